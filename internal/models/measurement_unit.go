package models

import "time"

type UnitKind string

const (
	UnitKindWeight UnitKind = "weight"
	UnitKindVolume UnitKind = "volume"
	UnitKindCount  UnitKind = "count"
)

// MeasurementUnit: Ölçü birimi (kg, litre, adet vs.)
// weight/count türleri için FactorToGram, volume için FactorToMilliliter zorunlu.
// Bir insumo tarafından referans edildikten sonra değiştirilmez.
type MeasurementUnit struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	UserID             uint     `gorm:"index;not null" json:"user_id"`
	Name               string   `gorm:"size:50;not null" json:"name"`
	Kind               UnitKind `gorm:"size:20;not null" json:"kind"`
	FactorToGram       *float64 `json:"factor_to_gram"`       // 1 birim kaç gram
	FactorToMilliliter *float64 `json:"factor_to_milliliter"` // 1 birim kaç ml
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
