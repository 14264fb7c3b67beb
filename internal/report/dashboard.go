package report

import (
	"sort"
	"time"

	"pastane-backend/internal/auth"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DashboardTopProduct struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
}

type DashboardResponse struct {
	TotalSalesMonth     float64               `json:"total_sales_month"`
	TotalCostsMonth     float64               `json:"total_costs_month"`
	ProductCount        int64                 `json:"product_count"`
	ExpiringIngredients int64                 `json:"expiring_ingredients"` // 30 gün içinde
	TopProducts         []DashboardTopProduct `json:"top_products"`
}

// GET /api/dashboard
// İçinde bulunulan ayın özeti: satış cirosu, hammadde alım maliyeti,
// ürün sayısı, yaklaşan son kullanma tarihleri ve en çok satan ürünler.
func GetDashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		now := time.Now()
		firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		nextMonth := firstDay.AddDate(0, 1, 0)

		var sales []models.Sale
		if err := database.DB.
			Preload("Product").
			Where("user_id = ? AND sale_date >= ? AND sale_date < ?", userID, firstDay, nextMonth).
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar okunamadı")
		}

		resp := DashboardResponse{TopProducts: make([]DashboardTopProduct, 0)}

		byProduct := make(map[string]float64)
		for _, sale := range sales {
			resp.TotalSalesMonth += sale.TotalPrice
			byProduct[sale.Product.Name] += sale.Quantity
		}

		// Ay içindeki hammadde alımları
		var purchaseCost *float64
		if err := database.DB.Model(&models.Ingredient{}).
			Where("user_id = ? AND purchase_date >= ? AND purchase_date < ?", userID, firstDay, nextMonth).
			Select("SUM(price_per_unit)").
			Scan(&purchaseCost).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alım maliyetleri okunamadı")
		}
		if purchaseCost != nil {
			resp.TotalCostsMonth = *purchaseCost
		}

		if err := database.DB.Model(&models.Product{}).
			Where("user_id = ?", userID).
			Count(&resp.ProductCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün sayısı okunamadı")
		}

		if err := database.DB.Model(&models.Ingredient{}).
			Where("user_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ?", userID, now.AddDate(0, 0, 30)).
			Count(&resp.ExpiringIngredients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Son kullanma tarihleri okunamadı")
		}

		for name, quantity := range byProduct {
			resp.TopProducts = append(resp.TopProducts, DashboardTopProduct{Name: name, Sales: quantity})
		}
		sort.Slice(resp.TopProducts, func(i, j int) bool {
			return resp.TopProducts[i].Sales > resp.TopProducts[j].Sales
		})
		if len(resp.TopProducts) > 5 {
			resp.TopProducts = resp.TopProducts[:5]
		}

		return c.JSON(resp)
	}
}
