package costing

import "pastane-backend/internal/models"

// StockBalance: Bir kalemin güncel stoğu hareket defterinden hesaplanır.
// balance = Σ(in) - Σ(out); sıralamadan bağımsızdır.
// Negatif bakiye geçerlidir (fazla satış/tüketim), burada engellenmez.
func StockBalance(movements []models.StockMovement) float64 {
	var balance float64
	for _, m := range movements {
		switch m.Direction {
		case models.StockIn:
			balance += m.Quantity
		case models.StockOut:
			balance -= m.Quantity
		}
	}
	return balance
}
