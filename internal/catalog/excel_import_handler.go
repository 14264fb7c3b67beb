package catalog

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"pastane-backend/internal/audit"
	"pastane-backend/internal/auth"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type ExcelImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// Kolon düzeni: İsim | Miktar | Fiyat | Birim | Kategori | Tedarikçi | Depo
// Birim ve kategori isimle eşleştirilir; eşleşmeyen satır atlanır.

// POST /api/ingredients/import-excel
func ImportIngredientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}

		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		// Başlık satırı kontrolü
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "HAMMADDE") || strings.Contains(firstCell, "İSİM") ||
				strings.Contains(firstCell, "ISIM") || strings.Contains(firstCell, "NAME") ||
				strings.Contains(firstCell, "INGREDIENT") {
				startIndex = 1
				log.Printf("İlk satır başlık satırı olarak algılandı, atlanıyor")
			}
		}

		var units []models.MeasurementUnit
		if err := database.DB.Where("user_id = ?", userID).Find(&units).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ölçü birimleri okunamadı")
		}
		var categories []models.Category
		if err := database.DB.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler okunamadı")
		}

		findUnit := func(name string) *models.MeasurementUnit {
			name = strings.ToLower(strings.TrimSpace(name))
			for i := range units {
				if strings.ToLower(units[i].Name) == name {
					return &units[i]
				}
			}
			return nil
		}
		findCategory := func(name string) *models.Category {
			name = strings.ToLower(strings.TrimSpace(name))
			for i := range categories {
				if strings.ToLower(categories[i].Name) == name {
					return &categories[i]
				}
			}
			return nil
		}

		cell := func(row []string, idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		result := ExcelImportResult{Errors: make([]string, 0)}

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			rowNo := i + 1

			name := cell(row, 0)
			if name == "" {
				continue
			}

			quantity, err := strconv.ParseFloat(strings.ReplaceAll(cell(row, 1), ",", "."), 64)
			if err != nil || quantity <= 0 {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: geçersiz miktar", rowNo))
				continue
			}

			price, err := strconv.ParseFloat(strings.ReplaceAll(cell(row, 2), ",", "."), 64)
			if err != nil || price < 0 {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: geçersiz fiyat", rowNo))
				continue
			}

			unit := findUnit(cell(row, 3))
			if unit == nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: ölçü birimi bulunamadı (%s)", rowNo, cell(row, 3)))
				continue
			}

			category := findCategory(cell(row, 4))
			if category == nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: kategori bulunamadı (%s)", rowNo, cell(row, 4)))
				continue
			}

			// Aynı isimde hammadde varsa atla
			var count int64
			database.DB.Model(&models.Ingredient{}).
				Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
				Count(&count)
			if count > 0 {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: %s zaten kayıtlı", rowNo, name))
				continue
			}

			ingredient := models.Ingredient{
				UserID:           userID,
				Name:             name,
				PurchaseQuantity: quantity,
				PricePerUnit:     price,
				UnitID:           unit.ID,
				CategoryID:       category.ID,
				Supplier:         cell(row, 5),
				StorageLocation:  cell(row, 6),
			}

			if err := database.DB.Create(&ingredient).Error; err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: kayıt hatası", rowNo))
				continue
			}

			result.Created++
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "ingredient",
			EntityID:    0,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Excel içe aktarma: %d eklendi, %d atlandı", result.Created, result.Skipped),
			After:       result,
		})

		return c.JSON(result)
	}
}
