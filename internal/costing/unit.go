package costing

import (
	"pastane-backend/internal/models"
)

// NormalizeQuantity: (miktar, birim) çiftini kanonik birime çevirir.
// weight ve count türleri gram, volume türü mililitre döner.
// count türü (ör. "adet") FactorToGram üzerinden ağırlık eşdeğeri kabul edilir;
// böylece tartılan ve sayılan hammaddeler aynı maliyet tabanında birleşir.
func NormalizeQuantity(quantity float64, unit models.MeasurementUnit) (float64, error) {
	switch unit.Kind {
	case models.UnitKindWeight, models.UnitKindCount:
		if unit.FactorToGram == nil || *unit.FactorToGram <= 0 {
			return 0, ErrInvalidUnitConfig
		}
		return quantity * *unit.FactorToGram, nil
	case models.UnitKindVolume:
		if unit.FactorToMilliliter == nil || *unit.FactorToMilliliter <= 0 {
			return 0, ErrInvalidUnitConfig
		}
		return quantity * *unit.FactorToMilliliter, nil
	default:
		return 0, ErrInvalidUnitConfig
	}
}

// IngredientCostPerGram: Hammaddenin kanonik birim başına maliyeti.
// costPerGram = pricePerUnit / (purchaseQuantity * factor)
func IngredientCostPerGram(pricePerUnit, purchaseQuantity float64, unit models.MeasurementUnit) (float64, error) {
	if pricePerUnit < 0 {
		return 0, ErrMissingField
	}

	baseQuantity, err := NormalizeQuantity(purchaseQuantity, unit)
	if err != nil {
		return 0, err
	}
	if baseQuantity <= 0 {
		return 0, ErrDivisionByZero
	}

	return pricePerUnit / baseQuantity, nil
}
