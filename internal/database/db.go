package database

import (
	"log"

	"pastane-backend/internal/config"
	"pastane-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.MeasurementUnit{},
		&models.Category{},
		&models.Ingredient{},
		&models.TechnicalSheet{},
		&models.TechnicalSheetLine{},
		&models.Product{},
		&models.ProductPrice{},
		&models.Production{},
		&models.Sale{},
		&models.StockMovement{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
