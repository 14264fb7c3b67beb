package recipe

import (
	"errors"
	"fmt"
	"testing"

	"pastane-backend/internal/costing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRecomputeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"geçersiz birim yapılandırması", costing.ErrInvalidUnitConfig, fiber.StatusBadRequest},
		{"geçersiz reçete ağırlığı", costing.ErrInvalidRecipeWeight, fiber.StatusBadRequest},
		{"sıfıra bölme", costing.ErrDivisionByZero, fiber.StatusBadRequest},
		{"eksik alan", costing.ErrMissingField, fiber.StatusBadRequest},
		{"sarılmış çekirdek hatası", fmt.Errorf("satır 3: %w", costing.ErrInvalidUnitConfig), fiber.StatusBadRequest},
		{"beklenmeyen hata", errors.New("connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapRecomputeError(tt.err, "Reçete oluşturulamadı")

			var fiberErr *fiber.Error
			require.ErrorAs(t, mapped, &fiberErr)
			assert.Equal(t, tt.wantCode, fiberErr.Code)
		})
	}
}

// Transaction içinden zaten fiber.Error dönmüşse (ör. 404) statüsü korunur
func TestMapRecomputeErrorKeepsFiberErrors(t *testing.T) {
	notFound := fiber.NewError(fiber.StatusNotFound, "Reçete bulunamadı")

	mapped := mapRecomputeError(notFound, "Reçete güncellenemedi")

	var fiberErr *fiber.Error
	require.ErrorAs(t, mapped, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}
