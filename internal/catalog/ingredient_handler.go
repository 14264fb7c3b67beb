package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pastane-backend/internal/audit"
	"pastane-backend/internal/auth"
	"pastane-backend/internal/costing"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"
	"pastane-backend/internal/recipe"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IngredientRequest struct {
	Name             string  `json:"name"`
	PurchaseQuantity float64 `json:"purchase_quantity"`
	PricePerUnit     float64 `json:"price_per_unit"`
	UnitID           uint    `json:"unit_id"`
	CategoryID       uint    `json:"category_id"`
	Supplier         string  `json:"supplier"`
	StorageLocation  string  `json:"storage_location"`
	PurchaseDate     *string `json:"purchase_date"` // "2026-08-31"
	ExpiryDate       *string `json:"expiry_date"`
}

type IngredientResponse struct {
	models.Ingredient
	CostPerGram float64 `json:"cost_per_gram"`
}

// Yardımcı: Kullanıcı adını al (audit log için)
func getUserName(userID uint) string {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return ""
	}
	return user.Name
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// validateIngredientRequest: Zorunlu alan ve referans kontrolleri.
// unit_id ve category_id zorunludur; placeholder/sentinel referans yoktur.
func validateIngredientRequest(userID uint, body *IngredientRequest) (*models.MeasurementUnit, error) {
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu")
	}
	if body.PurchaseQuantity <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Satın alma miktarı 0'dan büyük olmalı")
	}
	if body.PricePerUnit < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
	}
	if body.UnitID == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unit_id zorunlu")
	}
	if body.CategoryID == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "category_id zorunlu")
	}

	var unit models.MeasurementUnit
	if err := database.DB.First(&unit, "id = ? AND user_id = ?", body.UnitID, userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Ölçü birimi bulunamadı")
	}

	var category models.Category
	if err := database.DB.First(&category, "id = ? AND user_id = ?", body.CategoryID, userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
	}

	// Bozuk birim yapılandırması maliyet hesabına girmeden reddedilir
	if _, err := costing.IngredientCostPerGram(body.PricePerUnit, body.PurchaseQuantity, unit); err != nil {
		if errors.Is(err, costing.ErrInvalidUnitConfig) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Ölçü biriminin dönüşüm katsayısı geçersiz")
		}
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return &unit, nil
}

func toIngredientResponse(ingredient models.Ingredient) IngredientResponse {
	costPerGram, err := costing.IngredientCostPerGram(ingredient.PricePerUnit, ingredient.PurchaseQuantity, ingredient.Unit)
	if err != nil {
		costPerGram = 0
	}
	return IngredientResponse{Ingredient: ingredient, CostPerGram: costPerGram}
}

// GET /api/ingredients
func ListIngredientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var ingredients []models.Ingredient
		if err := database.DB.
			Preload("Unit").
			Preload("Category").
			Where("user_id = ?", userID).
			Order("name ASC").
			Find(&ingredients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hammaddeler listelenemedi")
		}

		resp := make([]IngredientResponse, 0, len(ingredients))
		for _, ingredient := range ingredients {
			resp = append(resp, toIngredientResponse(ingredient))
		}

		return c.JSON(resp)
	}
}

// POST /api/ingredients
func CreateIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body IngredientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if _, err := validateIngredientRequest(userID, &body); err != nil {
			return err
		}

		purchaseDate, err := parseDatePtr(body.PurchaseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		expiryDate, err := parseDatePtr(body.ExpiryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		ingredient := models.Ingredient{
			UserID:           userID,
			Name:             body.Name,
			PurchaseQuantity: body.PurchaseQuantity,
			PricePerUnit:     body.PricePerUnit,
			UnitID:           body.UnitID,
			CategoryID:       body.CategoryID,
			Supplier:         body.Supplier,
			StorageLocation:  body.StorageLocation,
			PurchaseDate:     purchaseDate,
			ExpiryDate:       expiryDate,
		}

		if err := database.DB.Create(&ingredient).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hammadde oluşturulamadı")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "ingredient",
			EntityID:    ingredient.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Hammadde: %s - %.2f", ingredient.Name, ingredient.PricePerUnit),
			After:       ingredient,
		})

		database.DB.Preload("Unit").Preload("Category").First(&ingredient, ingredient.ID)
		return c.Status(fiber.StatusCreated).JSON(toIngredientResponse(ingredient))
	}
}

// PUT /api/ingredients/:id
// Fiyat veya miktar değiştiğinde bu hammaddeyi kullanan reçetelerin maliyeti
// aynı işlemde yeniden hesaplanır (türetilmiş alanlar asla bayatlamaz).
func UpdateIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var ingredient models.Ingredient
		if err := database.DB.First(&ingredient, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hammadde bulunamadı")
		}
		before := ingredient

		var body IngredientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if _, err := validateIngredientRequest(userID, &body); err != nil {
			return err
		}

		purchaseDate, err := parseDatePtr(body.PurchaseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		expiryDate, err := parseDatePtr(body.ExpiryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		ingredient.Name = body.Name
		ingredient.PurchaseQuantity = body.PurchaseQuantity
		ingredient.PricePerUnit = body.PricePerUnit
		ingredient.UnitID = body.UnitID
		ingredient.CategoryID = body.CategoryID
		ingredient.Supplier = body.Supplier
		ingredient.StorageLocation = body.StorageLocation
		ingredient.PurchaseDate = purchaseDate
		ingredient.ExpiryDate = expiryDate

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&ingredient).Error; err != nil {
				return err
			}
			return recipe.RecomputeSheetsUsingIngredient(tx, userID, ingredient.ID)
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hammadde güncellenemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "ingredient",
			EntityID:    ingredient.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Hammadde güncellendi: %s", ingredient.Name),
			Before:      before,
			After:       ingredient,
		})

		database.DB.Preload("Unit").Preload("Category").First(&ingredient, ingredient.ID)
		return c.JSON(toIngredientResponse(ingredient))
	}
}

// DELETE /api/ingredients/:id
// Bağımlı reçete satırları da silinir; etkilenen reçetelerin maliyeti
// aynı transaction içinde yeniden hesaplanır.
func DeleteIngredientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var ingredient models.Ingredient
		if err := database.DB.First(&ingredient, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hammadde bulunamadı")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			// Etkilenen reçeteleri sil işleminden önce tespit et
			var sheetIDs []uint
			if err := tx.Model(&models.TechnicalSheetLine{}).
				Where("ingredient_id = ? AND user_id = ?", ingredient.ID, userID).
				Distinct("technical_sheet_id").
				Pluck("technical_sheet_id", &sheetIDs).Error; err != nil {
				return err
			}

			if err := tx.Delete(&models.TechnicalSheetLine{}, "ingredient_id = ? AND user_id = ?", ingredient.ID, userID).Error; err != nil {
				return err
			}

			if err := tx.Delete(&ingredient).Error; err != nil {
				return err
			}

			for _, sheetID := range sheetIDs {
				if err := recipe.RecomputeSheetCost(tx, userID, sheetID); err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hammadde silinemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "ingredient",
			EntityID:    ingredient.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Hammadde silindi: %s", ingredient.Name),
			After:       ingredient,
		})

		return c.JSON(fiber.Map{"success": true})
	}
}
