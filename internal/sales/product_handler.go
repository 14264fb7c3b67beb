package sales

import (
	"fmt"

	"pastane-backend/internal/audit"
	"pastane-backend/internal/auth"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductPriceRequest struct {
	Channel models.SaleChannel `json:"channel"`
	Price   float64            `json:"price"`
}

type ProductRequest struct {
	Name          string                `json:"name"`
	AverageWeight float64               `json:"average_weight"`
	CategoryID    uint                  `json:"category_id"`
	Prices        []ProductPriceRequest `json:"prices"`
}

func getUserName(userID uint) string {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return ""
	}
	return user.Name
}

func validChannel(ch models.SaleChannel) bool {
	switch ch {
	case models.ChannelRetail, models.ChannelWholesale, models.ChannelDelivery, models.ChannelEvents:
		return true
	}
	return false
}

func validateProductRequest(userID uint, body *ProductRequest) error {
	if body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu")
	}
	if body.AverageWeight <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Ortalama ağırlık 0'dan büyük olmalı")
	}
	if body.CategoryID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "category_id zorunlu")
	}

	var count int64
	database.DB.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", body.CategoryID, userID).
		Count(&count)
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
	}

	seen := make(map[models.SaleChannel]bool)
	for _, p := range body.Prices {
		if !validChannel(p.Channel) {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Geçersiz satış kanalı: %s", p.Channel))
		}
		if p.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
		}
		if seen[p.Channel] {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Kanal yineleniyor: %s", p.Channel))
		}
		seen[p.Channel] = true
	}

	return nil
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.
			Preload("Category").
			Preload("Prices").
			Where("user_id = ?", userID).
			Order("name ASC").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		return c.JSON(products)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := validateProductRequest(userID, &body); err != nil {
			return err
		}

		product := models.Product{
			UserID:        userID,
			Name:          body.Name,
			AverageWeight: body.AverageWeight,
			CategoryID:    body.CategoryID,
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			for _, p := range body.Prices {
				price := models.ProductPrice{
					UserID:    userID,
					ProductID: product.ID,
					Channel:   p.Channel,
					Price:     p.Price,
				}
				if err := tx.Create(&price).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		database.DB.Preload("Category").Preload("Prices").First(&product, product.ID)

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Ürün: %s", product.Name),
			After:       product,
		})

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// PUT /api/products/:id
// Fiyat listesi toptan değiştirilir: eski kanal fiyatları silinir, yenileri yazılır.
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var product models.Product
		if err := database.DB.
			Preload("Prices").
			First(&product, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}
		before := product

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := validateProductRequest(userID, &body); err != nil {
			return err
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.ProductPrice{}, "product_id = ? AND user_id = ?", product.ID, userID).Error; err != nil {
				return err
			}
			for _, p := range body.Prices {
				price := models.ProductPrice{
					UserID:    userID,
					ProductID: product.ID,
					Channel:   p.Channel,
					Price:     p.Price,
				}
				if err := tx.Create(&price).Error; err != nil {
					return err
				}
			}
			return tx.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
				"name":           body.Name,
				"average_weight": body.AverageWeight,
				"category_id":    body.CategoryID,
			}).Error
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		database.DB.Preload("Category").Preload("Prices").First(&product, product.ID)

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Ürün güncellendi: %s", product.Name),
			Before:      before,
			After:       product,
		})

		return c.JSON(product)
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var product models.Product
		if err := database.DB.
			Preload("Prices").
			First(&product, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		// Satış kaydı olan ürün silinemez
		var saleCount int64
		database.DB.Model(&models.Sale{}).
			Where("product_id = ? AND user_id = ?", product.ID, userID).
			Count(&saleCount)
		if saleCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Satış kaydı olan ürün silinemez")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.ProductPrice{}, "product_id = ? AND user_id = ?", product.ID, userID).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    getUserName(userID),
			EntityType:  "product",
			EntityID:    product.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Ürün silindi: %s", product.Name),
			After:       product,
		})

		return c.JSON(fiber.Map{"success": true})
	}
}
