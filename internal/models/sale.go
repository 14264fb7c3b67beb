package models

import "time"

// Sale: Satış kaydı
// Profit ve ProfitPercentage her yazımda costing paketi ile yeniden hesaplanır.
type Sale struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	UserID           uint    `gorm:"index;not null" json:"user_id"`
	ProductID        uint    `gorm:"index;not null" json:"product_id"`
	Product          Product `json:"product"`
	Quantity         float64 `gorm:"not null" json:"quantity"`
	WeightGrams      float64 `gorm:"not null" json:"weight_grams"`
	UnitPrice        float64 `gorm:"not null" json:"unit_price"`
	TotalPrice       float64 `gorm:"not null" json:"total_price"`
	CostPrice        float64 `json:"cost_price"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
	Channel          SaleChannel `gorm:"size:20" json:"channel"`
	Notes            string      `gorm:"size:255" json:"notes"`
	SaleDate         time.Time   `gorm:"index;not null" json:"sale_date"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
