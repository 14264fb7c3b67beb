package stock

import (
	"fmt"
	"time"

	"pastane-backend/internal/audit"
	"pastane-backend/internal/auth"
	"pastane-backend/internal/costing"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MovementRequest struct {
	ItemID      uint                  `json:"item_id"`
	ItemKind    models.StockItemKind  `json:"item_kind"`
	Direction   models.StockDirection `json:"direction"`
	Quantity    float64               `json:"quantity"`
	Reason      string                `json:"reason"`
	BatchNumber string                `json:"batch_number"`
}

type StockItemResponse struct {
	ItemID       uint                 `json:"item_id"`
	ItemKind     models.StockItemKind `json:"item_kind"`
	Name         string               `json:"name"`
	Balance      float64              `json:"balance"`
	Negative     bool                 `json:"negative"`
	ExpiringSoon bool                 `json:"expiring_soon"` // son kullanma tarihine <= 7 gün
	ExpiryDate   *time.Time           `json:"expiry_date,omitempty"`
}

const expiryWarningDays = 7

func getUserName(userID uint) string {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return ""
	}
	return user.Name
}

func movementsByItem(userID uint, kind models.StockItemKind) (map[uint][]models.StockMovement, error) {
	var movements []models.StockMovement
	if err := database.DB.
		Where("user_id = ? AND item_kind = ?", userID, kind).
		Find(&movements).Error; err != nil {
		return nil, err
	}

	grouped := make(map[uint][]models.StockMovement)
	for _, m := range movements {
		grouped[m.ItemID] = append(grouped[m.ItemID], m)
	}
	return grouped, nil
}

func ingredientStock(userID uint, now time.Time) ([]StockItemResponse, error) {
	var ingredients []models.Ingredient
	if err := database.DB.Where("user_id = ?", userID).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}

	grouped, err := movementsByItem(userID, models.StockItemIngredient)
	if err != nil {
		return nil, err
	}

	items := make([]StockItemResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		balance := costing.StockBalance(grouped[ing.ID])
		expiringSoon := false
		if ing.ExpiryDate != nil {
			expiringSoon = !ing.ExpiryDate.After(now.AddDate(0, 0, expiryWarningDays))
		}
		items = append(items, StockItemResponse{
			ItemID:       ing.ID,
			ItemKind:     models.StockItemIngredient,
			Name:         ing.Name,
			Balance:      balance,
			Negative:     balance < 0,
			ExpiringSoon: expiringSoon,
			ExpiryDate:   ing.ExpiryDate,
		})
	}
	return items, nil
}

func productStock(userID uint) ([]StockItemResponse, error) {
	var products []models.Product
	if err := database.DB.Where("user_id = ?", userID).Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}

	grouped, err := movementsByItem(userID, models.StockItemProduct)
	if err != nil {
		return nil, err
	}

	items := make([]StockItemResponse, 0, len(products))
	for _, p := range products {
		balance := costing.StockBalance(grouped[p.ID])
		items = append(items, StockItemResponse{
			ItemID:   p.ID,
			ItemKind: models.StockItemProduct,
			Name:     p.Name,
			Balance:  balance,
			Negative: balance < 0,
		})
	}
	return items, nil
}

// GET /api/stock?type=ingredients|products|all
// Bakiyeler her istekte hareket defterinden toplanır, sayaç tutulmaz.
func GetStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		stockType := c.Query("type", "all")
		now := time.Now()

		items := make([]StockItemResponse, 0)

		if stockType == "ingredients" || stockType == "all" {
			ingredientItems, err := ingredientStock(userID, now)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Hammadde stoku okunamadı")
			}
			items = append(items, ingredientItems...)
		}

		if stockType == "products" || stockType == "all" {
			productItems, err := productStock(userID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ürün stoku okunamadı")
			}
			items = append(items, productItems...)
		}

		return c.JSON(items)
	}
}

// GET /api/stock/movements?item_kind=&item_id=
func ListMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		query := database.DB.Where("user_id = ?", userID)
		if kind := c.Query("item_kind"); kind != "" {
			query = query.Where("item_kind = ?", kind)
		}
		if itemID := c.Query("item_id"); itemID != "" {
			query = query.Where("item_id = ?", itemID)
		}

		var movements []models.StockMovement
		if err := query.Order("created_at DESC").Find(&movements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hareketleri listelenemedi")
		}

		return c.JSON(movements)
	}
}

// POST /api/stock
// Defter append-only: hareket yazılır, bakiye asla doğrudan düzenlenmez.
// Negatif bakiyeye düşen çıkış da kabul edilir.
func CreateMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body MovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ItemID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "item_id zorunlu")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Miktar 0'dan büyük olmalı")
		}
		if body.Direction != models.StockIn && body.Direction != models.StockOut {
			return fiber.NewError(fiber.StatusBadRequest, "Yön 'in' veya 'out' olmalı")
		}

		switch body.ItemKind {
		case models.StockItemIngredient:
			var count int64
			database.DB.Model(&models.Ingredient{}).
				Where("id = ? AND user_id = ?", body.ItemID, userID).
				Count(&count)
			if count == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Hammadde bulunamadı")
			}
		case models.StockItemProduct:
			var count int64
			database.DB.Model(&models.Product{}).
				Where("id = ? AND user_id = ?", body.ItemID, userID).
				Count(&count)
			if count == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "item_kind 'ingredient' veya 'product' olmalı")
		}

		movement := models.StockMovement{
			UserID:      userID,
			ItemID:      body.ItemID,
			ItemKind:    body.ItemKind,
			Direction:   body.Direction,
			Quantity:    body.Quantity,
			Reason:      body.Reason,
			BatchNumber: body.BatchNumber,
		}

		if err := database.DB.Create(&movement).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hareketi kaydedilemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "stock_movement",
			EntityID:    movement.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Stok hareketi: %s %s %.2f (ID: %d)", movement.ItemKind, movement.Direction, movement.Quantity, movement.ItemID),
			After:       movement,
		})

		return c.Status(fiber.StatusCreated).JSON(movement)
	}
}
