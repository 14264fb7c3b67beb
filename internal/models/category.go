package models

import "time"

// Category: Hammadde ve ürün kategorileri (ör: "Farináceos", "Laticínios", "Bolos")
type Category struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
