package costing

import (
	"fmt"
	"time"
)

// YieldResult: Beklenen/gerçekleşen çıktı karşılaştırması
type YieldResult struct {
	ExpectedWeight float64
	Losses         float64
	LossPercentage float64
}

// CalculateYield: Üretim partisinin fire hesabı.
// expectedWeight = finalWeightGrams * quantityBatches
// losses = explicitLosses (verilmişse) yoksa expectedWeight - actualWeightGrams
// lossPercentage = losses / expectedWeight * 100
// expectedWeight 0 olamaz; NaN/Inf üretmek yerine ErrDivisionByZero döner.
func CalculateYield(finalWeightGrams, quantityBatches, actualWeightGrams float64, explicitLosses *float64) (YieldResult, error) {
	expectedWeight := finalWeightGrams * quantityBatches
	if expectedWeight <= 0 {
		return YieldResult{}, ErrDivisionByZero
	}

	losses := expectedWeight - actualWeightGrams
	if explicitLosses != nil {
		losses = *explicitLosses
	}

	return YieldResult{
		ExpectedWeight: expectedWeight,
		Losses:         losses,
		LossPercentage: losses / expectedWeight * 100,
	}, nil
}

// BatchNumber: Tarih önekli parti numarası üretir, ör: "20260831-4217".
// Son ek milisaniyeden türetilir; merkezi bir sayaç gerektirmeden pratik
// teklik sağlar. Üretim kaydına bir kez atanır, sonradan değişmez.
func BatchNumber(now time.Time) string {
	return fmt.Sprintf("%s-%04d", now.Format("20060102"), now.UnixMilli()%10000)
}
