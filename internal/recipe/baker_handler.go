package recipe

import (
	"errors"
	"fmt"

	"pastane-backend/internal/audit"
	"pastane-backend/internal/auth"
	"pastane-backend/internal/costing"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BakerRecalculationRequest struct {
	FlourWeightGrams float64 `json:"flour_weight_grams"`
}

// POST /api/technical-sheets/:id/recalculate
// Fırıncı yüzdesi: un satırı %100 kabul edilir, diğer satırlar yüzdelerine
// göre yeniden ölçeklenir, ardından maliyet aynı transaction içinde tazelenir.
// Un satırı, kategorisi un/farináceos olarak adlandırılmış hammaddedir
// (kategori adında alt dize eşleşmesi - orijinal sistemle uyumlu sözleşme).
func RecalculateSheetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body BakerRecalculationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.FlourWeightGrams <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "flour_weight_grams 0'dan büyük olmalı")
		}

		var sheet models.TechnicalSheet
		if err := database.DB.
			Preload("Lines.Ingredient.Category").
			First(&sheet, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reçete bulunamadı")
		}
		before := sheet

		if len(sheet.Lines) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Reçetede satır yok")
		}

		bakerLines := make([]costing.BakerLine, 0, len(sheet.Lines))
		for _, line := range sheet.Lines {
			bakerLines = append(bakerLines, costing.BakerLine{
				IngredientID:  line.IngredientID,
				QuantityGrams: line.QuantityGrams,
				Percentage:    line.Percentage,
				IsFlourBase:   costing.IsFlourCategory(line.Ingredient.Category.Name),
			})
		}

		recalculated, err := costing.RecalculateBakerPercentages(body.FlourWeightGrams, bakerLines)
		if err != nil {
			if errors.Is(err, costing.ErrNoFlourLine) {
				return fiber.NewError(fiber.StatusBadRequest,
					"Taban (%100) olarak kullanılacak un kategorisinde bir hammadde ekleyin")
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			for i, line := range sheet.Lines {
				if err := tx.Model(&models.TechnicalSheetLine{}).Where("id = ?", line.ID).Updates(map[string]interface{}{
					"quantity_grams": recalculated[i].QuantityGrams,
					"percentage":     recalculated[i].Percentage,
				}).Error; err != nil {
					return err
				}
			}
			return RecomputeSheetCost(tx, userID, sheet.ID)
		})
		if txErr != nil {
			return mapRecomputeError(txErr, "Reçete yeniden hesaplanamadı")
		}

		database.DB.Preload("Lines.Ingredient.Unit").Preload("Lines.Ingredient.Category").First(&sheet, sheet.ID)

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "technical_sheet",
			EntityID:    sheet.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Fırıncı yüzdesi: %s, un tabanı %.0fg", sheet.Name, body.FlourWeightGrams),
			Before:      before,
			After:       sheet,
		})

		return c.JSON(sheet)
	}
}
