package sales

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

type SaleRequest struct {
	ProductID   uint               `json:"product_id"`
	Quantity    float64            `json:"quantity"`
	WeightGrams float64            `json:"weight_grams"` // boşsa ürünün ortalama ağırlığından türetilir
	UnitPrice   float64            `json:"unit_price"`
	CostPrice   *float64           `json:"cost_price"` // boşsa ciro üzerinden tahmin edilir
	Channel     models.SaleChannel `json:"channel"`
	Notes       string             `json:"notes"`
	SaleDate    *string            `json:"sale_date"` // "2006-01-02", boşsa bugün
}

func parseSaleDate(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", *s)
}

// applySaleCalculations: Türetilmiş alanları her yazımda baştan hesaplar.
// Ciro, maliyet, kâr ve kâr yüzdesi asla elle verilmez.
func applySaleCalculations(sale *models.Sale, body *SaleRequest, product models.Product) {
	sale.TotalPrice = body.UnitPrice * body.Quantity

	if body.WeightGrams > 0 {
		sale.WeightGrams = body.WeightGrams
	} else {
		sale.WeightGrams = product.AverageWeight * body.Quantity
	}

	if body.CostPrice != nil {
		sale.CostPrice = *body.CostPrice
	} else {
		sale.CostPrice = costing.EstimateCostPrice(sale.TotalPrice)
	}

	sale.Profit, sale.ProfitPercentage = costing.CalculateMargin(sale.TotalPrice, sale.CostPrice)
}

func validateSaleRequest(body *SaleRequest) error {
	if body.ProductID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "product_id zorunlu")
	}
	if body.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Miktar 0'dan büyük olmalı")
	}
	if body.UnitPrice < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Birim fiyat negatif olamaz")
	}
	if body.CostPrice != nil && *body.CostPrice < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Maliyet negatif olamaz")
	}
	if body.Channel != "" && !validChannel(body.Channel) {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Geçersiz satış kanalı: %s", body.Channel))
	}
	return nil
}

// GET /api/sales
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		query := database.DB.
			Preload("Product").
			Where("user_id = ?", userID)

		if channel := c.Query("channel"); channel != "" {
			query = query.Where("channel = ?", channel)
		}

		var sales []models.Sale
		if err := query.Order("sale_date DESC").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		return c.JSON(sales)
	}
}

// POST /api/sales
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body SaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := validateSaleRequest(&body); err != nil {
			return err
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND user_id = ?", body.ProductID, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		saleDate, err := parseSaleDate(body.SaleDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-AA-GG bekleniyor)")
		}

		sale := models.Sale{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  body.Quantity,
			UnitPrice: body.UnitPrice,
			Channel:   body.Channel,
			Notes:     body.Notes,
			SaleDate:  saleDate,
		}
		applySaleCalculations(&sale, &body, product)

		if err := database.DB.Create(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı oluşturulamadı")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Satış: %s x%.1f = %.2f", product.Name, sale.Quantity, sale.TotalPrice),
			After:       sale,
		})

		sale.Product = product
		return c.Status(fiber.StatusCreated).JSON(sale)
	}
}

// PUT /api/sales/:id
func UpdateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var sale models.Sale
		if err := database.DB.First(&sale, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış kaydı bulunamadı")
		}
		before := sale

		var body SaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := validateSaleRequest(&body); err != nil {
			return err
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND user_id = ?", body.ProductID, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		saleDate, err := parseSaleDate(body.SaleDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih formatı (YYYY-AA-GG bekleniyor)")
		}
		if body.SaleDate == nil || *body.SaleDate == "" {
			saleDate = sale.SaleDate
		}

		sale.ProductID = product.ID
		sale.Quantity = body.Quantity
		sale.UnitPrice = body.UnitPrice
		sale.Channel = body.Channel
		sale.Notes = body.Notes
		sale.SaleDate = saleDate
		applySaleCalculations(&sale, &body, product)

		if err := database.DB.Save(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı güncellenemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Satış güncellendi: %s", product.Name),
			Before:      before,
			After:       sale,
		})

		sale.Product = product
		return c.JSON(sale)
	}
}

// DELETE /api/sales/:id
func DeleteSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var sale models.Sale
		if err := database.DB.First(&sale, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış kaydı bulunamadı")
		}

		if err := database.DB.Delete(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydı silinemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Satış silindi (ID: %d)", sale.ID),
			After:       sale,
		})

		return c.JSON(fiber.Map{"success": true})
	}
}
