package models

import "time"

type StockItemKind string

const (
	StockItemIngredient StockItemKind = "ingredient"
	StockItemProduct    StockItemKind = "product"
)

type StockDirection string

const (
	StockIn  StockDirection = "in"
	StockOut StockDirection = "out"
)

// StockMovement: Append-only stok hareket defteri
// Güncel stok her zaman hareketlerden toplanır (Σin - Σout), sayaç olarak saklanmaz.
// Negatif bakiye geçerli bir durumdur; raporlama katmanı öne çıkarır, engellemez.
type StockMovement struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	ItemID      uint           `gorm:"index;not null" json:"item_id"`
	ItemKind    StockItemKind  `gorm:"size:20;index;not null" json:"item_kind"`
	Direction   StockDirection `gorm:"size:10;not null" json:"direction"`
	Quantity    float64        `gorm:"not null" json:"quantity"`
	Reason      string         `gorm:"size:255" json:"reason"`
	BatchNumber string         `gorm:"size:20;index" json:"batch_number"` // üretim partisiyle ilişkilendirme
	CreatedAt   time.Time      `json:"created_at"`
}
