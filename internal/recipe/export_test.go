package recipe

import (
	"strconv"
	"testing"

	"pastane-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestBuildSheetWorkbook(t *testing.T) {
	kg := models.MeasurementUnit{Name: "Kilogram", Kind: models.UnitKindWeight, FactorToGram: ptr(1000)}

	sheet := models.TechnicalSheet{
		Name:             "Ekşi Mayalı Ekmek",
		Description:      "Günlük üretim",
		FinalWeightGrams: 900,
		TotalCost:        3.0,
		CostPerGram:      3.0 / 900,
		Lines: []models.TechnicalSheetLine{
			{
				QuantityGrams: 1000,
				Percentage:    100,
				Ingredient: models.Ingredient{
					Name:             "Un",
					PurchaseQuantity: 25,
					PricePerUnit:     75,
					Unit:             kg,
					Category:         models.Category{Name: "Farináceos"},
				},
			},
		},
	}

	file, err := BuildSheetWorkbook(sheet)
	require.NoError(t, err)
	defer file.Close()

	name, err := file.GetCellValue("Sheet1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Ekşi Mayalı Ekmek", name)

	totalCost, err := file.GetCellValue("Sheet1", "B4")
	require.NoError(t, err)
	assert.Equal(t, "3", totalCost)

	// Satır tablosu 8. satırdan başlar (başlık 7. satırda)
	lineName, err := file.GetCellValue("Sheet1", "A8")
	require.NoError(t, err)
	assert.Equal(t, "Un", lineName)

	// 75 / (25 * 1000) = 0.003 gram başı maliyet, satır maliyeti 1000g x 0.003 = 3
	lineCost, err := file.GetCellValue("Sheet1", "F8")
	require.NoError(t, err)
	parsed, err := strconv.ParseFloat(lineCost, 64)
	require.NoError(t, err)
	assert.InEpsilon(t, 3.0, parsed, 1e-9)
}
