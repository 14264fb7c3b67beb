package costing

import (
	"testing"

	"pastane-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStockBalance(t *testing.T) {
	movements := []models.StockMovement{
		{Direction: models.StockIn, Quantity: 10},
		{Direction: models.StockOut, Quantity: 3},
		{Direction: models.StockIn, Quantity: 2},
	}

	assert.Equal(t, 9.0, StockBalance(movements))
}

func TestStockBalanceOrderIndependent(t *testing.T) {
	a := []models.StockMovement{
		{Direction: models.StockIn, Quantity: 10},
		{Direction: models.StockOut, Quantity: 3},
		{Direction: models.StockIn, Quantity: 2},
	}
	b := []models.StockMovement{
		{Direction: models.StockOut, Quantity: 3},
		{Direction: models.StockIn, Quantity: 2},
		{Direction: models.StockIn, Quantity: 10},
	}

	assert.Equal(t, StockBalance(a), StockBalance(b))
}

func TestStockBalanceNegative(t *testing.T) {
	// Fazla tüketim: negatif bakiye geçerli bir durumdur, engellenmez
	movements := []models.StockMovement{
		{Direction: models.StockIn, Quantity: 5},
		{Direction: models.StockOut, Quantity: 8},
	}

	assert.Equal(t, -3.0, StockBalance(movements))
}

func TestStockBalanceEmpty(t *testing.T) {
	assert.Equal(t, 0.0, StockBalance(nil))
}
