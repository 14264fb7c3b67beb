package recipe

import (
	"fmt"

	"pastane-backend/internal/auth"
	"pastane-backend/internal/costing"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/technical-sheets/:id/export
// Maliyetlendirilmiş reçetenin XLSX çıktısı. Hesaplanmış alanlar olduğu gibi
// yazılır; export katmanı hiçbir değeri yeniden hesaplamaz.
func ExportSheetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var sheet models.TechnicalSheet
		if err := database.DB.
			Preload("Lines.Ingredient.Unit").
			Preload("Lines.Ingredient.Category").
			First(&sheet, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reçete bulunamadı")
		}

		file, err := BuildSheetWorkbook(sheet)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}
		defer file.Close()

		buf, err := file.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası yazılamadı")
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="recete-%d.xlsx"`, sheet.ID))
		return c.Send(buf.Bytes())
	}
}

// BuildSheetWorkbook: Reçete anlık görüntüsünden XLSX çalışma kitabı üretir.
func BuildSheetWorkbook(sheet models.TechnicalSheet) (*excelize.File, error) {
	file := excelize.NewFile()
	const ws = "Sheet1"

	rows := [][]interface{}{
		{"Reçete", sheet.Name},
		{"Açıklama", sheet.Description},
		{"Nihai Ağırlık (g)", sheet.FinalWeightGrams},
		{"Toplam Maliyet", sheet.TotalCost},
		{"Gram Başı Maliyet", sheet.CostPerGram},
		{},
		{"Hammadde", "Kategori", "Miktar (g)", "Yüzde (%)", "Gram Başı Maliyet", "Satır Maliyeti"},
	}

	for _, row := range sheet.Lines {
		costPerGram, err := costing.IngredientCostPerGram(
			row.Ingredient.PricePerUnit,
			row.Ingredient.PurchaseQuantity,
			row.Ingredient.Unit,
		)
		if err != nil {
			costPerGram = 0
		}
		rows = append(rows, []interface{}{
			row.Ingredient.Name,
			row.Ingredient.Category.Name,
			row.QuantityGrams,
			row.Percentage,
			costPerGram,
			row.QuantityGrams * costPerGram,
		})
	}

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(ws, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return file, nil
}
