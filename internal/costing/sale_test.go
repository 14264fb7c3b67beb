package costing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMargin(t *testing.T) {
	// Örnek senaryo: 50.00 ciro, 35.00 maliyet -> 15.00 kâr, %30
	profit, pct := CalculateMargin(50.00, 35.00)
	assert.InEpsilon(t, 15.00, profit, 1e-9)
	assert.InEpsilon(t, 30.0, pct, 1e-9)
}

func TestCalculateMarginZeroTotal(t *testing.T) {
	// totalPrice = 0 -> yüzde 0, istisna veya NaN değil
	profit, pct := CalculateMargin(0, 10)
	assert.Equal(t, -10.0, profit)
	assert.Equal(t, 0.0, pct)
	assert.False(t, math.IsNaN(pct))
}

func TestCalculateMarginLoss(t *testing.T) {
	// Zararına satış: negatif kâr ve yüzde geçerli
	profit, pct := CalculateMargin(20, 25)
	assert.Equal(t, -5.0, profit)
	assert.InEpsilon(t, -25.0, pct, 1e-9)
}

func TestEstimateCostPrice(t *testing.T) {
	assert.InEpsilon(t, 35.0, EstimateCostPrice(50.0), 1e-9)
	assert.Equal(t, 0.0, EstimateCostPrice(0))
}

func TestSuggestedPrice(t *testing.T) {
	// 0.003/g x 900g = 2.70 taban + 1.30 ambalaj = 4.00, %200 kâr -> 12.00
	price := SuggestedPrice(0.003, 900, 200, 1.30)
	assert.InEpsilon(t, 12.00, price, 1e-9)

	// Ambalajsız, kârsız: öneri = taban maliyet
	assert.InEpsilon(t, 2.70, SuggestedPrice(0.003, 900, 0, 0), 1e-9)
}

func TestMarkup(t *testing.T) {
	// 50 satış / 35 maliyet -> maliyet üzerinden %42.857...
	assert.InEpsilon(t, 42.857142857142854, Markup(50, 35), 1e-9)

	// Maliyet 0 -> 0, NaN/Inf değil
	markup := Markup(50, 0)
	assert.Equal(t, 0.0, markup)
	assert.False(t, math.IsNaN(markup))
}
