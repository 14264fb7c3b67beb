package report

import (
	"sort"
	"strconv"
	"time"

	"pastane-backend/internal/auth"
	"pastane-backend/internal/costing"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TopProduct struct {
	Name    string  `json:"name"`
	Sales   float64 `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type MonthlyFigure struct {
	Month  string  `json:"month"` // "2026-08"
	Sales  float64 `json:"sales"`
	Costs  float64 `json:"costs"`
	Profit float64 `json:"profit"`
}

type IngredientConsumption struct {
	Name     string  `json:"name"`
	Consumed float64 `json:"consumed"` // gram
	Cost     float64 `json:"cost"`
}

type ReportResponse struct {
	TotalSales            float64                 `json:"total_sales"`
	TotalCosts            float64                 `json:"total_costs"`
	TotalProfit           float64                 `json:"total_profit"`
	ProfitMargin          float64                 `json:"profit_margin"`
	TopProducts           []TopProduct            `json:"top_products"`
	MonthlySales          []MonthlyFigure         `json:"monthly_sales"`
	IngredientConsumption []IngredientConsumption `json:"ingredient_consumption"`
}

// GET /api/reports?period=30
// Dönem raporu: satış toplamları, kâr marjı, en çok ciro yapan ürünler,
// aylık kırılım ve üretimlerden türetilen hammadde tüketimi. Tüm rakamlar
// kayıtlı veriden toplanır.
func GetReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		period, err := strconv.Atoi(c.Query("period", "30"))
		if err != nil || period <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "period pozitif bir sayı olmalı")
		}

		startDate := time.Now().AddDate(0, 0, -period)

		var sales []models.Sale
		if err := database.DB.
			Preload("Product").
			Where("user_id = ? AND sale_date >= ?", userID, startDate).
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar okunamadı")
		}

		var productions []models.Production
		if err := database.DB.
			Preload("TechnicalSheet.Lines.Ingredient.Unit").
			Where("user_id = ? AND production_date >= ?", userID, startDate).
			Find(&productions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üretimler okunamadı")
		}

		resp := ReportResponse{
			TopProducts:           make([]TopProduct, 0),
			MonthlySales:          make([]MonthlyFigure, 0),
			IngredientConsumption: make([]IngredientConsumption, 0),
		}

		type productAgg struct {
			sales   float64
			revenue float64
		}
		byProduct := make(map[string]*productAgg)
		byMonth := make(map[string]*MonthlyFigure)

		for _, sale := range sales {
			resp.TotalSales += sale.TotalPrice
			resp.TotalProfit += sale.Profit

			agg := byProduct[sale.Product.Name]
			if agg == nil {
				agg = &productAgg{}
				byProduct[sale.Product.Name] = agg
			}
			agg.sales += sale.Quantity
			agg.revenue += sale.TotalPrice

			monthKey := sale.SaleDate.Format("2006-01")
			m := byMonth[monthKey]
			if m == nil {
				m = &MonthlyFigure{Month: monthKey}
				byMonth[monthKey] = m
			}
			m.Sales += sale.TotalPrice
			m.Profit += sale.Profit
			m.Costs += sale.CostPrice
		}

		resp.TotalCosts = resp.TotalSales - resp.TotalProfit
		if resp.TotalSales > 0 {
			resp.ProfitMargin = resp.TotalProfit / resp.TotalSales * 100
		}

		for name, agg := range byProduct {
			resp.TopProducts = append(resp.TopProducts, TopProduct{
				Name:    name,
				Sales:   agg.sales,
				Revenue: agg.revenue,
			})
		}
		sort.Slice(resp.TopProducts, func(i, j int) bool {
			return resp.TopProducts[i].Revenue > resp.TopProducts[j].Revenue
		})
		if len(resp.TopProducts) > 5 {
			resp.TopProducts = resp.TopProducts[:5]
		}

		for _, m := range byMonth {
			resp.MonthlySales = append(resp.MonthlySales, *m)
		}
		sort.Slice(resp.MonthlySales, func(i, j int) bool {
			return resp.MonthlySales[i].Month < resp.MonthlySales[j].Month
		})

		// Tüketim: üretim partileri x reçete satır gramajı
		consumption := make(map[string]*IngredientConsumption)
		for _, p := range productions {
			for _, line := range p.TechnicalSheet.Lines {
				grams := line.QuantityGrams * p.QuantityBatches

				costPerGram, err := costing.IngredientCostPerGram(
					line.Ingredient.PricePerUnit,
					line.Ingredient.PurchaseQuantity,
					line.Ingredient.Unit,
				)
				if err != nil {
					costPerGram = 0
				}

				entry := consumption[line.Ingredient.Name]
				if entry == nil {
					entry = &IngredientConsumption{Name: line.Ingredient.Name}
					consumption[line.Ingredient.Name] = entry
				}
				entry.Consumed += grams
				entry.Cost += grams * costPerGram
			}
		}
		for _, entry := range consumption {
			resp.IngredientConsumption = append(resp.IngredientConsumption, *entry)
		}
		sort.Slice(resp.IngredientConsumption, func(i, j int) bool {
			return resp.IngredientConsumption[i].Consumed > resp.IngredientConsumption[j].Consumed
		})

		return c.JSON(resp)
	}
}
