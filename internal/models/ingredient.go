package models

import "time"

// Ingredient: Satın alınan hammadde (insumo)
// Türetilen değer: costPerGram = PricePerUnit / (PurchaseQuantity * FactorToGram)
// Bu değer saklanmaz, her okumada costing paketi ile hesaplanır.
type Ingredient struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	UserID           uint    `gorm:"index;not null" json:"user_id"`
	Name             string  `gorm:"size:100;not null" json:"name"`
	PurchaseQuantity float64 `gorm:"not null" json:"purchase_quantity"` // satın alınan miktar (birim cinsinden)
	PricePerUnit     float64 `gorm:"not null" json:"price_per_unit"`    // satın alma fiyatı
	UnitID           uint    `gorm:"index;not null" json:"unit_id"`
	Unit             MeasurementUnit `json:"unit"`
	CategoryID       uint     `gorm:"index;not null" json:"category_id"`
	Category         Category `json:"category"`
	Supplier         string   `gorm:"size:100" json:"supplier"`
	StorageLocation  string   `gorm:"size:100" json:"storage_location"`
	PurchaseDate     *time.Time `json:"purchase_date"`
	ExpiryDate       *time.Time `json:"expiry_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
