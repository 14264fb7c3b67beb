package models

import "time"

// Production: Bir reçetenin parti üretim kaydı
// ExpectedWeight = sheet.FinalWeightGrams * QuantityBatches (saklanmaz, hesaplanır)
// BatchNumber üretim anında bir kez atanır, sonradan değişmez.
type Production struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	UserID            uint    `gorm:"index;not null" json:"user_id"`
	TechnicalSheetID  uint    `gorm:"index;not null" json:"technical_sheet_id"`
	TechnicalSheet    TechnicalSheet `json:"technical_sheet"`
	QuantityBatches   float64 `gorm:"not null" json:"quantity_batches"`
	ActualWeightGrams float64 `gorm:"not null" json:"actual_weight_grams"`
	Losses            float64 `json:"losses"`
	LossPercentage    float64 `json:"loss_percentage"`
	BatchNumber       string  `gorm:"size:20;index;not null" json:"batch_number"`
	Notes             string  `gorm:"size:255" json:"notes"`
	ProductionDate    time.Time `gorm:"index;not null" json:"production_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
