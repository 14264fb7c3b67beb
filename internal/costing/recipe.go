package costing

import "strings"

// RecipeLine: Maliyet hesabı için gereken satır verisi.
// CostPerGram çağıran taraf tarafından IngredientCostPerGram ile çözülür.
type RecipeLine struct {
	IngredientID  uint
	QuantityGrams float64
	CostPerGram   float64
}

// CalculateRecipeCost: Reçetenin toplam ve gram başı maliyetini hesaplar.
// totalCost = Σ(quantityGrams * costPerGram), costPerGram = totalCost / finalWeightGrams
// Saf fonksiyondur; sonucu kalıcılaştırmak çağıranın sorumluluğu.
func CalculateRecipeCost(lines []RecipeLine, finalWeightGrams float64) (totalCost, costPerGram float64, err error) {
	if finalWeightGrams <= 0 {
		return 0, 0, ErrInvalidRecipeWeight
	}

	for _, line := range lines {
		totalCost += line.QuantityGrams * line.CostPerGram
	}

	return totalCost, totalCost / finalWeightGrams, nil
}

// BakerLine: Fırıncı yüzdesi yeniden hesabı için satır.
// IsFlourBase çağıran tarafından kategori adına bakılarak işaretlenir.
type BakerLine struct {
	IngredientID  uint
	QuantityGrams float64
	Percentage    float64
	IsFlourBase   bool
}

// RecalculateBakerPercentages: Un ağırlığını taban (%100) alıp diğer satırları
// yüzdelerine göre yeniden ölçekler. Yüzdesi girilmemiş satırlar aynen kalır.
// Yeni bir satır kümesi döner; sonrasında CalculateRecipeCost tekrar çağrılmalı.
// İdempotenttir: aynı un ağırlığıyla ikinci uygulama aynı miktarları üretir.
func RecalculateBakerPercentages(flourWeightGrams float64, lines []BakerLine) ([]BakerLine, error) {
	if flourWeightGrams <= 0 {
		return nil, ErrInvalidFlourWeight
	}

	hasFlour := false
	for _, line := range lines {
		if line.IsFlourBase {
			hasFlour = true
			break
		}
	}
	if !hasFlour {
		return nil, ErrNoFlourLine
	}

	result := make([]BakerLine, len(lines))
	for i, line := range lines {
		updated := line
		if line.IsFlourBase {
			updated.QuantityGrams = flourWeightGrams
			updated.Percentage = 100
		} else if line.Percentage > 0 {
			updated.QuantityGrams = flourWeightGrams * line.Percentage / 100
		}
		result[i] = updated
	}

	return result, nil
}

// IsFlourCategory: Kategori adı üzerinden un tabanı tespiti.
// "Farináceos" / "farinha" / "flour" gibi adları yakalamak için alt dize
// eşleşmesi kullanılır; bu, orijinal sistemle uyumlu temel sözleşmedir.
func IsFlourCategory(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "farin") || strings.Contains(lower, "flour")
}
