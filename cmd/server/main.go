package main

import (
	"log"
	"strings"

	"pastane-backend/internal/audit"
	"pastane-backend/internal/auth"
	"pastane-backend/internal/catalog"
	"pastane-backend/internal/config"
	"pastane-backend/internal/database"
	"pastane-backend/internal/production"
	"pastane-backend/internal/recipe"
	"pastane-backend/internal/report"
	"pastane-backend/internal/sales"
	"pastane-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Ölçü birimleri: kullanıcıya özel referans verisi, her hesap kendi
	// birimlerini oluşturur
	protected.Get("/measurement-units", catalog.ListMeasurementUnitsHandler())
	protected.Post("/measurement-units", catalog.CreateMeasurementUnitHandler())

	// Kategoriler
	protected.Get("/categories", catalog.ListCategoriesHandler())
	protected.Post("/categories", catalog.CreateCategoryHandler())

	// Hammaddeler
	protected.Get("/ingredients", catalog.ListIngredientsHandler())
	protected.Post("/ingredients", catalog.CreateIngredientHandler())
	protected.Put("/ingredients/:id", catalog.UpdateIngredientHandler())
	protected.Delete("/ingredients/:id", catalog.DeleteIngredientHandler())
	protected.Post("/ingredients/import-excel", catalog.ImportIngredientsHandler())

	// Reçeteler (teknik föyler)
	protected.Get("/technical-sheets", recipe.ListSheetsHandler())
	protected.Get("/technical-sheets/:id", recipe.GetSheetHandler())
	protected.Post("/technical-sheets", recipe.CreateSheetHandler())
	protected.Put("/technical-sheets/:id", recipe.UpdateSheetHandler())
	protected.Delete("/technical-sheets/:id", recipe.DeleteSheetHandler())
	protected.Post("/technical-sheets/:id/recalculate", recipe.RecalculateSheetHandler())
	protected.Get("/technical-sheets/:id/export", recipe.ExportSheetHandler())

	// Üretim
	protected.Get("/production", production.ListProductionsHandler())
	protected.Post("/production", production.CreateProductionHandler())
	protected.Put("/production/:id", production.UpdateProductionHandler())
	protected.Delete("/production/:id", production.DeleteProductionHandler())

	// Ürünler ve satışlar
	protected.Get("/products", sales.ListProductsHandler())
	protected.Post("/products", sales.CreateProductHandler())
	protected.Put("/products/:id", sales.UpdateProductHandler())
	protected.Delete("/products/:id", sales.DeleteProductHandler())

	protected.Get("/sales", sales.ListSalesHandler())
	protected.Post("/sales", sales.CreateSaleHandler())
	protected.Put("/sales/:id", sales.UpdateSaleHandler())
	protected.Delete("/sales/:id", sales.DeleteSaleHandler())

	// Stok
	protected.Get("/stock", stock.GetStockHandler())
	protected.Get("/stock/movements", stock.ListMovementsHandler())
	protected.Post("/stock", stock.CreateMovementHandler())

	// Raporlar ve dashboard
	protected.Get("/reports", report.GetReportHandler())
	protected.Get("/dashboard", report.GetDashboardHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
