package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRecipeCost(t *testing.T) {
	// Örnek senaryo: 1000g un @ 0.003/g, nihai ağırlık 900g
	lines := []RecipeLine{
		{IngredientID: 1, QuantityGrams: 1000, CostPerGram: 0.003},
	}

	totalCost, costPerGram, err := CalculateRecipeCost(lines, 900)
	require.NoError(t, err)
	assert.InEpsilon(t, 3.00, totalCost, 1e-9)
	assert.InEpsilon(t, 3.00/900, costPerGram, 1e-9)
}

func TestCalculateRecipeCostMultipleLines(t *testing.T) {
	lines := []RecipeLine{
		{IngredientID: 1, QuantityGrams: 1000, CostPerGram: 0.003},  // un
		{IngredientID: 2, QuantityGrams: 650, CostPerGram: 0.0012},  // su (neredeyse bedava değil)
		{IngredientID: 3, QuantityGrams: 20, CostPerGram: 0.05},     // tuz
	}

	totalCost, costPerGram, err := CalculateRecipeCost(lines, 1500)
	require.NoError(t, err)

	want := 1000*0.003 + 650*0.0012 + 20*0.05
	assert.InEpsilon(t, want, totalCost, 1e-9)
	assert.InEpsilon(t, want/1500, costPerGram, 1e-9)

	// İdempotens: aynı girdiyle tekrar hesap aynı değeri üretir
	totalCost2, costPerGram2, err := CalculateRecipeCost(lines, 1500)
	require.NoError(t, err)
	assert.Equal(t, totalCost, totalCost2)
	assert.Equal(t, costPerGram, costPerGram2)
}

func TestCalculateRecipeCostInvalidWeight(t *testing.T) {
	lines := []RecipeLine{{IngredientID: 1, QuantityGrams: 100, CostPerGram: 0.01}}

	_, _, err := CalculateRecipeCost(lines, 0)
	assert.ErrorIs(t, err, ErrInvalidRecipeWeight)

	_, _, err = CalculateRecipeCost(lines, -50)
	assert.ErrorIs(t, err, ErrInvalidRecipeWeight)
}

func TestCalculateRecipeCostEmptyLines(t *testing.T) {
	totalCost, costPerGram, err := CalculateRecipeCost(nil, 500)
	require.NoError(t, err)
	assert.Equal(t, 0.0, totalCost)
	assert.Equal(t, 0.0, costPerGram)
}

func TestRecalculateBakerPercentages(t *testing.T) {
	lines := []BakerLine{
		{IngredientID: 1, QuantityGrams: 500, Percentage: 100, IsFlourBase: true},
		{IngredientID: 2, QuantityGrams: 300, Percentage: 65},  // su
		{IngredientID: 3, QuantityGrams: 10, Percentage: 2},    // tuz
		{IngredientID: 4, QuantityGrams: 50, Percentage: 0},    // yüzdesiz satır: dokunulmaz
	}

	result, err := RecalculateBakerPercentages(1000, lines)
	require.NoError(t, err)
	require.Len(t, result, 4)

	assert.Equal(t, 1000.0, result[0].QuantityGrams)
	assert.Equal(t, 100.0, result[0].Percentage)
	assert.InEpsilon(t, 650.0, result[1].QuantityGrams, 1e-9)
	assert.InEpsilon(t, 20.0, result[2].QuantityGrams, 1e-9)
	assert.Equal(t, 50.0, result[3].QuantityGrams) // pass-through

	// Girdi dilimi değişmemiş olmalı
	assert.Equal(t, 500.0, lines[0].QuantityGrams)
}

func TestRecalculateBakerPercentagesFixedPoint(t *testing.T) {
	lines := []BakerLine{
		{IngredientID: 1, QuantityGrams: 500, Percentage: 100, IsFlourBase: true},
		{IngredientID: 2, QuantityGrams: 325, Percentage: 65},
	}

	once, err := RecalculateBakerPercentages(800, lines)
	require.NoError(t, err)

	// Sabit nokta: aynı un ağırlığıyla ikinci uygulama aynı miktarları verir
	twice, err := RecalculateBakerPercentages(800, once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestRecalculateBakerPercentagesNoFlour(t *testing.T) {
	lines := []BakerLine{
		{IngredientID: 2, QuantityGrams: 300, Percentage: 65},
	}

	_, err := RecalculateBakerPercentages(1000, lines)
	assert.ErrorIs(t, err, ErrNoFlourLine)
}

func TestRecalculateBakerPercentagesInvalidFlourWeight(t *testing.T) {
	lines := []BakerLine{
		{IngredientID: 1, QuantityGrams: 500, Percentage: 100, IsFlourBase: true},
	}

	_, err := RecalculateBakerPercentages(0, lines)
	assert.ErrorIs(t, err, ErrInvalidFlourWeight)
}

func TestIsFlourCategory(t *testing.T) {
	assert.True(t, IsFlourCategory("Farináceos"))
	assert.True(t, IsFlourCategory("farinha de trigo"))
	assert.True(t, IsFlourCategory("Flour"))
	assert.False(t, IsFlourCategory("Laticínios"))
	assert.False(t, IsFlourCategory(""))
}
