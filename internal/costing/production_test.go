package costing

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateYield(t *testing.T) {
	// Örnek senaryo: 900g reçete x 10 parti, gerçekleşen 8700g
	result, err := CalculateYield(900, 10, 8700, nil)
	require.NoError(t, err)

	assert.Equal(t, 9000.0, result.ExpectedWeight)
	assert.Equal(t, 300.0, result.Losses)
	assert.InEpsilon(t, 300.0/9000*100, result.LossPercentage, 1e-9)
}

func TestCalculateYieldExplicitLosses(t *testing.T) {
	explicit := 150.0
	result, err := CalculateYield(900, 10, 8700, &explicit)
	require.NoError(t, err)

	assert.Equal(t, 150.0, result.Losses)
	assert.InEpsilon(t, 150.0/9000*100, result.LossPercentage, 1e-9)
}

func TestCalculateYieldNegativeLosses(t *testing.T) {
	// Gerçekleşen ağırlık beklenenden fazla: fire negatif, bu geçerli bir durum
	result, err := CalculateYield(900, 10, 9300, nil)
	require.NoError(t, err)
	assert.Equal(t, -300.0, result.Losses)
	assert.Less(t, result.LossPercentage, 0.0)
}

func TestCalculateYieldZeroExpectedWeight(t *testing.T) {
	// expectedWeight = 0 -> ErrDivisionByZero, asla NaN/Inf değil
	_, err := CalculateYield(0, 10, 100, nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = CalculateYield(900, 0, 100, nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	result, err := CalculateYield(900, 10, 8700, nil)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(result.LossPercentage))
	assert.False(t, math.IsInf(result.LossPercentage, 0))
}

func TestBatchNumber(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
	got := BatchNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^20260831-\d{4}$`), got)

	// Tarih bileşeni üretim gününü taşır
	other := BatchNumber(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^20260105-\d{4}$`), other)
}
