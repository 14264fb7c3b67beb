package recipe

import (
	"fmt"

	"pastane-backend/internal/audit"
	"pastane-backend/internal/auth"
	"pastane-backend/internal/costing"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SheetLineRequest struct {
	IngredientID  uint    `json:"ingredient_id"`
	QuantityGrams float64 `json:"quantity_grams"`
	Percentage    float64 `json:"percentage"`
}

type SheetRequest struct {
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	PreparationTime  *int               `json:"preparation_time"`
	OvenTemperature  *int               `json:"oven_temperature"`
	Instructions     string             `json:"instructions"`
	Observations     string             `json:"observations"`
	FinalWeightGrams float64            `json:"final_weight_grams"`
	Lines            []SheetLineRequest `json:"lines"`
}

func getUserName(userID uint) string {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return ""
	}
	return user.Name
}

func validateSheetRequest(userID uint, body *SheetRequest) error {
	if body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu")
	}
	if body.FinalWeightGrams <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Nihai ağırlık 0'dan büyük olmalı")
	}

	for _, line := range body.Lines {
		if line.IngredientID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ingredient_id zorunlu")
		}
		if line.QuantityGrams <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Satır miktarı 0'dan büyük olmalı")
		}

		var count int64
		database.DB.Model(&models.Ingredient{}).
			Where("id = ? AND user_id = ?", line.IngredientID, userID).
			Count(&count)
		if count == 0 {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Hammadde bulunamadı (ID: %d)", line.IngredientID))
		}
	}

	return nil
}

// GET /api/technical-sheets
func ListSheetsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var sheets []models.TechnicalSheet
		if err := database.DB.
			Preload("Lines.Ingredient.Unit").
			Preload("Lines.Ingredient.Category").
			Where("user_id = ?", userID).
			Order("name ASC").
			Find(&sheets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Reçeteler listelenemedi")
		}

		return c.JSON(sheets)
	}
}

type SheetDetailResponse struct {
	models.TechnicalSheet
	SuggestedPrice *float64 `json:"suggested_price,omitempty"`
	Markup         *float64 `json:"markup,omitempty"`
}

// GET /api/technical-sheets/:id?desired_profit=200&packaging_cost=1.50
// desired_profit verilirse yanıtta önerilen satış fiyatı ve maliyet üzerinden
// fark yüzdesi de döner.
func GetSheetHandler() fiber.Handler {
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

		resp := SheetDetailResponse{TechnicalSheet: sheet}

		if desiredProfit := c.QueryFloat("desired_profit", -1); desiredProfit >= 0 {
			packagingCost := c.QueryFloat("packaging_cost", 0)
			suggested := costing.SuggestedPrice(sheet.CostPerGram, sheet.FinalWeightGrams, desiredProfit, packagingCost)
			markup := costing.Markup(suggested, sheet.TotalCost+packagingCost)
			resp.SuggestedPrice = &suggested
			resp.Markup = &markup
		}

		return c.JSON(resp)
	}
}

// POST /api/technical-sheets
// Satırlar ve maliyet aynı transaction içinde yazılır; türetilmiş alanlar
// kayıttan önce hesaplanır, asla elle verilmez.
func CreateSheetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body SheetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := validateSheetRequest(userID, &body); err != nil {
			return err
		}

		sheet := models.TechnicalSheet{
			UserID:           userID,
			Name:             body.Name,
			Description:      body.Description,
			PreparationTime:  body.PreparationTime,
			OvenTemperature:  body.OvenTemperature,
			Instructions:     body.Instructions,
			Observations:     body.Observations,
			FinalWeightGrams: body.FinalWeightGrams,
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&sheet).Error; err != nil {
				return err
			}

			for _, line := range body.Lines {
				sheetLine := models.TechnicalSheetLine{
					TechnicalSheetID: sheet.ID,
					UserID:           userID,
					IngredientID:     line.IngredientID,
					QuantityGrams:    line.QuantityGrams,
					Percentage:       line.Percentage,
				}
				if err := tx.Create(&sheetLine).Error; err != nil {
					return err
				}
			}

			return RecomputeSheetCost(tx, userID, sheet.ID)
		})
		if txErr != nil {
			return mapRecomputeError(txErr, "Reçete oluşturulamadı")
		}

		database.DB.Preload("Lines.Ingredient.Unit").Preload("Lines.Ingredient.Category").First(&sheet, sheet.ID)

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "technical_sheet",
			EntityID:    sheet.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Reçete: %s (%.0fg)", sheet.Name, sheet.FinalWeightGrams),
			After:       sheet,
		})

		return c.Status(fiber.StatusCreated).JSON(sheet)
	}
}

// PUT /api/technical-sheets/:id
// Satırlar toptan değiştirilir (kısmi güncelleme yok); maliyet aynı
// transaction içinde tazelenir. Eşzamanlı düzenlemede son yazan kazanır.
func UpdateSheetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var sheet models.TechnicalSheet
		if err := database.DB.
			Preload("Lines").
			First(&sheet, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reçete bulunamadı")
		}
		before := sheet

		var body SheetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := validateSheetRequest(userID, &body); err != nil {
			return err
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.TechnicalSheetLine{}, "technical_sheet_id = ? AND user_id = ?", sheet.ID, userID).Error; err != nil {
				return err
			}

			for _, line := range body.Lines {
				sheetLine := models.TechnicalSheetLine{
					TechnicalSheetID: sheet.ID,
					UserID:           userID,
					IngredientID:     line.IngredientID,
					QuantityGrams:    line.QuantityGrams,
					Percentage:       line.Percentage,
				}
				if err := tx.Create(&sheetLine).Error; err != nil {
					return err
				}
			}

			if err := tx.Model(&models.TechnicalSheet{}).Where("id = ?", sheet.ID).Updates(map[string]interface{}{
				"name":               body.Name,
				"description":        body.Description,
				"preparation_time":   body.PreparationTime,
				"oven_temperature":   body.OvenTemperature,
				"instructions":       body.Instructions,
				"observations":       body.Observations,
				"final_weight_grams": body.FinalWeightGrams,
			}).Error; err != nil {
				return err
			}

			return RecomputeSheetCost(tx, userID, sheet.ID)
		})
		if txErr != nil {
			return mapRecomputeError(txErr, "Reçete güncellenemedi")
		}

		database.DB.Preload("Lines.Ingredient.Unit").Preload("Lines.Ingredient.Category").First(&sheet, sheet.ID)

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "technical_sheet",
			EntityID:    sheet.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Reçete güncellendi: %s", sheet.Name),
			Before:      before,
			After:       sheet,
		})

		return c.JSON(sheet)
	}
}

// DELETE /api/technical-sheets/:id
// Bağımlı satırlar kaskad silinir.
func DeleteSheetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var sheet models.TechnicalSheet
		if err := database.DB.
			Preload("Lines").
			First(&sheet, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reçete bulunamadı")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.TechnicalSheetLine{}, "technical_sheet_id = ? AND user_id = ?", sheet.ID, userID).Error; err != nil {
				return err
			}
			return tx.Delete(&sheet).Error
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Reçete silinemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "technical_sheet",
			EntityID:    sheet.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Reçete silindi: %s", sheet.Name),
			After:       sheet,
		})

		return c.JSON(fiber.Map{"success": true})
	}
}
