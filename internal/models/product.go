package models

import "time"

type SaleChannel string

const (
	ChannelRetail    SaleChannel = "varejo"
	ChannelWholesale SaleChannel = "atacado"
	ChannelDelivery  SaleChannel = "delivery"
	ChannelEvents    SaleChannel = "eventos"
)

// Product: Satışa sunulan bitmiş ürün
type Product struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	UserID        uint    `gorm:"index;not null" json:"user_id"`
	Name          string  `gorm:"size:100;not null" json:"name"`
	AverageWeight float64 `gorm:"not null" json:"average_weight"` // gram
	CategoryID    uint     `gorm:"index;not null" json:"category_id"`
	Category      Category `json:"category"`
	Prices        []ProductPrice `gorm:"constraint:OnDelete:CASCADE" json:"prices"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductPrice: Kanal başına tek fiyat (product, channel) ikilisi unique
type ProductPrice struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"index;not null" json:"user_id"`
	ProductID uint        `gorm:"uniqueIndex:idx_product_channel;not null" json:"product_id"`
	Channel   SaleChannel `gorm:"size:20;uniqueIndex:idx_product_channel;not null" json:"channel"`
	Price     float64     `gorm:"not null" json:"price"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
