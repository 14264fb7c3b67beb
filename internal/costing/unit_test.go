package costing

import (
	"testing"

	"pastane-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestNormalizeQuantity(t *testing.T) {
	kg := models.MeasurementUnit{Name: "kg", Kind: models.UnitKindWeight, FactorToGram: ptr(1000)}
	litre := models.MeasurementUnit{Name: "litre", Kind: models.UnitKindVolume, FactorToMilliliter: ptr(1000)}
	adet := models.MeasurementUnit{Name: "adet", Kind: models.UnitKindCount, FactorToGram: ptr(60)} // 1 yumurta ~60g

	got, err := NormalizeQuantity(2.5, kg)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, got)

	got, err = NormalizeQuantity(0.75, litre)
	require.NoError(t, err)
	assert.Equal(t, 750.0, got)

	// count türü FactorToGram üzerinden ağırlık eşdeğeri
	got, err = NormalizeQuantity(12, adet)
	require.NoError(t, err)
	assert.Equal(t, 720.0, got)
}

func TestNormalizeQuantityInvalidConfig(t *testing.T) {
	cases := []models.MeasurementUnit{
		{Name: "kg", Kind: models.UnitKindWeight},                                // katsayı yok
		{Name: "kg", Kind: models.UnitKindWeight, FactorToGram: ptr(0)},          // sıfır
		{Name: "litre", Kind: models.UnitKindVolume},                             // ml katsayısı yok
		{Name: "litre", Kind: models.UnitKindVolume, FactorToMilliliter: ptr(-1)},
		{Name: "adet", Kind: models.UnitKindCount},
		{Name: "bilinmeyen", Kind: "fantezi"},
	}

	for _, unit := range cases {
		_, err := NormalizeQuantity(1, unit)
		assert.ErrorIs(t, err, ErrInvalidUnitConfig, "birim: %s/%s", unit.Name, unit.Kind)
	}
}

func TestIngredientCostPerGram(t *testing.T) {
	// Örnek senaryo: 25kg un, 75.00 -> 0.003 / gram
	kg := models.MeasurementUnit{Kind: models.UnitKindWeight, FactorToGram: ptr(1000)}
	got, err := IngredientCostPerGram(75.00, 25, kg)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.003, got, 1e-9)

	// Doğrudan gram birimi
	gram := models.MeasurementUnit{Kind: models.UnitKindWeight, FactorToGram: ptr(1)}
	got, err = IngredientCostPerGram(75.00, 25000, gram)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.003, got, 1e-9)
}

func TestIngredientCostPerGramGuards(t *testing.T) {
	kg := models.MeasurementUnit{Kind: models.UnitKindWeight, FactorToGram: ptr(1000)}

	// Satın alma miktarı 0 -> sıfıra bölme, Inf değil
	_, err := IngredientCostPerGram(75.00, 0, kg)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	// Negatif fiyat -> validasyon hatası
	_, err = IngredientCostPerGram(-1, 25, kg)
	assert.ErrorIs(t, err, ErrMissingField)

	// Bozuk birim yapılandırması hesaptan önce yakalanır
	_, err = IngredientCostPerGram(75.00, 25, models.MeasurementUnit{Kind: models.UnitKindWeight})
	assert.ErrorIs(t, err, ErrInvalidUnitConfig)
}
