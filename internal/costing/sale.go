package costing

// EstimatedCostRatio: Satışta birim maliyet tabanı bilinmiyorsa kullanılan
// sabit tahmin oranı (maliyet = ciro * 0.70). Açıkça belgelenmiş bir
// yaklaşıklıktır; costPrice verildiğinde asla uygulanmaz.
const EstimatedCostRatio = 0.70

// EstimateCostPrice: Maliyet tabanı olmayan satış için tahmini maliyet.
func EstimateCostPrice(totalPrice float64) float64 {
	return totalPrice * EstimatedCostRatio
}

// CalculateMargin: Satışın kâr rakamlarını türetir.
// profit = totalPrice - costPrice
// profitPercentage = totalPrice > 0 ise profit/totalPrice*100, değilse 0
// totalPrice 0 iken istisna değil 0 döner (NaN üretilmez).
func CalculateMargin(totalPrice, costPrice float64) (profit, profitPercentage float64) {
	profit = totalPrice - costPrice
	if totalPrice > 0 {
		profitPercentage = profit / totalPrice * 100
	}
	return profit, profitPercentage
}

// SuggestedPrice: Reçete maliyetinden önerilen satış fiyatı.
// taban = costPerGram * finalWeightGrams + packagingCost
// öneri = taban * (1 + desiredProfitPct/100)
func SuggestedPrice(costPerGram, finalWeightGrams, desiredProfitPct, packagingCost float64) float64 {
	baseCost := costPerGram*finalWeightGrams + packagingCost
	return baseCost * (1 + desiredProfitPct/100)
}

// Markup: Maliyet üzerinden fiyat farkı yüzdesi. Marjdan farkı payda:
// markup maliyete, marj satış fiyatına böler. Maliyet 0 ise 0 döner.
func Markup(sellingPrice, cost float64) float64 {
	if cost > 0 {
		return (sellingPrice - cost) / cost * 100
	}
	return 0
}
