package production

import (
	"errors"
	"fmt"
	"time"

	"pastane-backend/internal/audit"
	"pastane-backend/internal/auth"
	"pastane-backend/internal/costing"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductionRequest struct {
	TechnicalSheetID  uint     `json:"technical_sheet_id"`
	QuantityBatches   float64  `json:"quantity_batches"`
	ActualWeightGrams float64  `json:"actual_weight_grams"`
	Losses            *float64 `json:"losses"` // boşsa beklenen - gerçekleşen
	Notes             string   `json:"notes"`
}

type ProductionResponse struct {
	models.Production
	ExpectedWeight float64 `json:"expected_weight"`
	SheetName      string  `json:"sheet_name"`
	BatchCost      float64 `json:"batch_cost"` // sheet.TotalCost * QuantityBatches
}

func getUserName(userID uint) string {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return ""
	}
	return user.Name
}

func toProductionResponse(p models.Production) ProductionResponse {
	return ProductionResponse{
		Production:     p,
		ExpectedWeight: p.TechnicalSheet.FinalWeightGrams * p.QuantityBatches,
		SheetName:      p.TechnicalSheet.Name,
		BatchCost:      p.TechnicalSheet.TotalCost * p.QuantityBatches,
	}
}

// GET /api/production
func ListProductionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var productions []models.Production
		if err := database.DB.
			Preload("TechnicalSheet").
			Where("user_id = ?", userID).
			Order("production_date DESC").
			Find(&productions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretimler listelenemedi")
		}

		resp := make([]ProductionResponse, 0, len(productions))
		for _, p := range productions {
			resp = append(resp, toProductionResponse(p))
		}

		return c.JSON(resp)
	}
}

// POST /api/production
// Parti numarası burada bir kez atanır ve bir daha değişmez.
func CreateProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body ProductionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.TechnicalSheetID == 0 || body.QuantityBatches <= 0 || body.ActualWeightGrams <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "technical_sheet_id, quantity_batches ve actual_weight_grams zorunlu")
		}

		var sheet models.TechnicalSheet
		if err := database.DB.First(&sheet, "id = ? AND user_id = ?", body.TechnicalSheetID, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reçete bulunamadı")
		}

		result, err := costing.CalculateYield(sheet.FinalWeightGrams, body.QuantityBatches, body.ActualWeightGrams, body.Losses)
		if err != nil {
			if errors.Is(err, costing.ErrDivisionByZero) {
				return fiber.NewError(fiber.StatusBadRequest, "Beklenen ağırlık 0 olamaz")
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		p := models.Production{
			UserID:            userID,
			TechnicalSheetID:  sheet.ID,
			QuantityBatches:   body.QuantityBatches,
			ActualWeightGrams: body.ActualWeightGrams,
			Losses:            result.Losses,
			LossPercentage:    result.LossPercentage,
			BatchNumber:       costing.BatchNumber(time.Now()),
			Notes:             body.Notes,
			ProductionDate:    time.Now(),
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretim kaydı oluşturulamadı")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "production",
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Üretim: %s x%.1f, parti %s", sheet.Name, p.QuantityBatches, p.BatchNumber),
			After:       p,
		})

		p.TechnicalSheet = sheet
		return c.Status(fiber.StatusCreated).JSON(toProductionResponse(p))
	}
}

// PUT /api/production/:id
// Fire rakamları yeniden hesaplanır; BatchNumber güncellenmez.
func UpdateProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var p models.Production
		if err := database.DB.First(&p, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Üretim kaydı bulunamadı")
		}
		before := p

		var body ProductionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.TechnicalSheetID == 0 || body.QuantityBatches <= 0 || body.ActualWeightGrams <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "technical_sheet_id, quantity_batches ve actual_weight_grams zorunlu")
		}

		var sheet models.TechnicalSheet
		if err := database.DB.First(&sheet, "id = ? AND user_id = ?", body.TechnicalSheetID, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reçete bulunamadı")
		}

		result, err := costing.CalculateYield(sheet.FinalWeightGrams, body.QuantityBatches, body.ActualWeightGrams, body.Losses)
		if err != nil {
			if errors.Is(err, costing.ErrDivisionByZero) {
				return fiber.NewError(fiber.StatusBadRequest, "Beklenen ağırlık 0 olamaz")
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		p.TechnicalSheetID = sheet.ID
		p.QuantityBatches = body.QuantityBatches
		p.ActualWeightGrams = body.ActualWeightGrams
		p.Losses = result.Losses
		p.LossPercentage = result.LossPercentage
		p.Notes = body.Notes

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretim kaydı güncellenemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "production",
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Üretim güncellendi: parti %s", p.BatchNumber),
			Before:      before,
			After:       p,
		})

		p.TechnicalSheet = sheet
		return c.JSON(toProductionResponse(p))
	}
}

// DELETE /api/production/:id
func DeleteProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var p models.Production
		if err := database.DB.First(&p, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Üretim kaydı bulunamadı")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretim kaydı silinemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "production",
			EntityID:    p.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Üretim silindi: parti %s", p.BatchNumber),
			After:       p,
		})

		return c.JSON(fiber.Map{"success": true})
	}
}
