package recipe

import (
	"errors"

	"pastane-backend/internal/costing"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// mapRecomputeError: Maliyet çekirdeğinden dönen doğrulama hataları 400 ile
// yüzeye çıkar; geri kalan her şey verilen genel mesajla 500 olur.
func mapRecomputeError(err error, fallback string) error {
	switch {
	case errors.Is(err, costing.ErrInvalidUnitConfig),
		errors.Is(err, costing.ErrInvalidRecipeWeight),
		errors.Is(err, costing.ErrDivisionByZero),
		errors.Is(err, costing.ErrMissingField):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if e, ok := err.(*fiber.Error); ok {
		return e
	}
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

// RecomputeSheetCost: Reçetenin totalCost/costPerGram alanlarını satırlardan
// yeniden hesaplayıp yazar. Türetilmiş alanlar yalnızca bu yoldan güncellenir,
// elle düzenlenmez; çağıran taraf bunu satır değişikliğiyle aynı transaction
// içinde yapar.
func RecomputeSheetCost(tx *gorm.DB, userID, sheetID uint) error {
	var sheet models.TechnicalSheet
	if err := tx.Preload("Lines.Ingredient.Unit").
		First(&sheet, "id = ? AND user_id = ?", sheetID, userID).Error; err != nil {
		return err
	}

	lines := make([]costing.RecipeLine, 0, len(sheet.Lines))
	for _, line := range sheet.Lines {
		costPerGram, err := costing.IngredientCostPerGram(
			line.Ingredient.PricePerUnit,
			line.Ingredient.PurchaseQuantity,
			line.Ingredient.Unit,
		)
		if err != nil {
			return err
		}
		lines = append(lines, costing.RecipeLine{
			IngredientID:  line.IngredientID,
			QuantityGrams: line.QuantityGrams,
			CostPerGram:   costPerGram,
		})
	}

	totalCost, costPerGram, err := costing.CalculateRecipeCost(lines, sheet.FinalWeightGrams)
	if err != nil {
		return err
	}

	return tx.Model(&models.TechnicalSheet{}).Where("id = ?", sheetID).Updates(map[string]interface{}{
		"total_cost":    totalCost,
		"cost_per_gram": costPerGram,
	}).Error
}

// RecomputeSheetsUsingIngredient: Hammaddeyi kullanan her reçetenin maliyetini
// tazeler. Hammadde fiyatı/miktarı değiştiğinde catalog paketi çağırır.
func RecomputeSheetsUsingIngredient(tx *gorm.DB, userID, ingredientID uint) error {
	var sheetIDs []uint
	if err := tx.Model(&models.TechnicalSheetLine{}).
		Where("ingredient_id = ? AND user_id = ?", ingredientID, userID).
		Distinct("technical_sheet_id").
		Pluck("technical_sheet_id", &sheetIDs).Error; err != nil {
		return err
	}

	for _, sheetID := range sheetIDs {
		if err := RecomputeSheetCost(tx, userID, sheetID); err != nil {
			return err
		}
	}
	return nil
}
