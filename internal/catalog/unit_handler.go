package catalog

import (
	"strings"

	"pastane-backend/internal/auth"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMeasurementUnitRequest struct {
	Name               string          `json:"name"`
	Kind               models.UnitKind `json:"kind"` // "weight" | "volume" | "count"
	FactorToGram       *float64        `json:"factor_to_gram"`
	FactorToMilliliter *float64        `json:"factor_to_milliliter"`
}

// POST /api/measurement-units
// Birim türünün gerektirdiği katsayı olmadan kayıt oluşturulamaz; böylece
// maliyet hesabına hiç geçersiz birim giremez.
func CreateMeasurementUnitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateMeasurementUnitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu")
		}

		switch body.Kind {
		case models.UnitKindWeight, models.UnitKindCount:
			if body.FactorToGram == nil || *body.FactorToGram <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "weight/count türü için factor_to_gram pozitif olmalı")
			}
		case models.UnitKindVolume:
			if body.FactorToMilliliter == nil || *body.FactorToMilliliter <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "volume türü için factor_to_milliliter pozitif olmalı")
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tür (weight|volume|count)")
		}

		unit := models.MeasurementUnit{
			UserID:             userID,
			Name:               body.Name,
			Kind:               body.Kind,
			FactorToGram:       body.FactorToGram,
			FactorToMilliliter: body.FactorToMilliliter,
		}

		if err := database.DB.Create(&unit).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ölçü birimi oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(unit)
	}
}

// GET /api/measurement-units
func ListMeasurementUnitsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var units []models.MeasurementUnit
		if err := database.DB.
			Where("user_id = ?", userID).
			Order("name ASC").
			Find(&units).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ölçü birimleri listelenemedi")
		}

		return c.JSON(units)
	}
}
