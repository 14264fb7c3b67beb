package models

import "time"

// TechnicalSheet: Ficha técnica - maliyetlendirilmiş reçete tanımı
// TotalCost ve CostPerGram türetilmiş alanlardır; satırlar her değiştiğinde
// costing paketi ile aynı transaction içinde yeniden hesaplanır, elle güncellenmez.
type TechnicalSheet struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	UserID           uint    `gorm:"index;not null" json:"user_id"`
	Name             string  `gorm:"size:100;not null" json:"name"`
	Description      string  `gorm:"size:255" json:"description"`
	PreparationTime  *int    `json:"preparation_time"` // dakika
	OvenTemperature  *int    `json:"oven_temperature"` // °C
	Instructions     string  `gorm:"type:text" json:"instructions"`
	Observations     string  `gorm:"type:text" json:"observations"`
	FinalWeightGrams float64 `gorm:"not null" json:"final_weight_grams"` // pişmiş ürün ağırlığı
	TotalCost        float64 `json:"total_cost"`
	CostPerGram      float64 `json:"cost_per_gram"`
	Lines            []TechnicalSheetLine `gorm:"constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TechnicalSheetLine: Reçetedeki bir hammadde satırı
// QuantityGrams esas kaynaktır; Percentage fırıncı yüzdesi (un = %100) ve
// yalnızca gösterim/yeniden ölçekleme amaçlıdır.
type TechnicalSheetLine struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	TechnicalSheetID uint    `gorm:"index;not null" json:"technical_sheet_id"`
	UserID           uint    `gorm:"index;not null" json:"user_id"`
	IngredientID     uint    `gorm:"index;not null" json:"ingredient_id"`
	Ingredient       Ingredient `json:"ingredient"`
	QuantityGrams    float64 `gorm:"not null" json:"quantity_grams"`
	Percentage       float64 `json:"percentage"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
