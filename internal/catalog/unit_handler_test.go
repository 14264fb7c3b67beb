package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"pastane-backend/internal/auth"
	"pastane-backend/internal/database"
	"pastane-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB: Bellek içi, isimlendirilmiş sqlite veritabanı. cache=shared
// olmadan havuzdaki her bağlantı kendi boş veritabanını görür.
func setupTestDB(t *testing.T, name string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MeasurementUnit{},
		&models.Category{},
		&models.Ingredient{},
	))

	database.DB = db
}

// asUser: JWT middleware'in yaptığı gibi kimliği context'e koyar
func asUser(userID uint, role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, userID)
		c.Locals(auth.CtxUserRoleKey, role)
		return c.Next()
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, []byte) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, data
}

// Editör rolündeki bir kullanıcı kendi ölçü birimini oluşturabilmeli,
// listesinde görebilmeli ve hammadde kaydında referans verebilmeli.
// Birimler kullanıcıya özeldir; oluşturma admin'e kapalı değildir.
func TestEditorCreatesAndReferencesOwnUnit(t *testing.T) {
	setupTestDB(t, "units_editor")

	const editorID uint = 7

	app := fiber.New()
	app.Use(asUser(editorID, models.RoleEditor))
	app.Post("/measurement-units", CreateMeasurementUnitHandler())
	app.Get("/measurement-units", ListMeasurementUnitsHandler())

	factor := 1000.0
	status, data := postJSON(t, app, "/measurement-units", CreateMeasurementUnitRequest{
		Name:         "Kilogram",
		Kind:         models.UnitKindWeight,
		FactorToGram: &factor,
	})
	require.Equal(t, fiber.StatusCreated, status, string(data))

	var created models.MeasurementUnit
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, editorID, created.UserID)

	req := httptest.NewRequest("GET", "/measurement-units", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	listData, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var units []models.MeasurementUnit
	require.NoError(t, json.Unmarshal(listData, &units))
	require.Len(t, units, 1)
	assert.Equal(t, "Kilogram", units[0].Name)

	// Oluşturulan birim hammadde doğrulamasından geçmeli
	category := models.Category{UserID: editorID, Name: "Farináceos"}
	require.NoError(t, database.DB.Create(&category).Error)

	unit, err := validateIngredientRequest(editorID, &IngredientRequest{
		Name:             "Un",
		PurchaseQuantity: 25,
		PricePerUnit:     75,
		UnitID:           created.ID,
		CategoryID:       category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, unit.ID)
}

// Başka kullanıcının birimi görünmez ve referans edilemez
func TestUnitsAreScopedPerUser(t *testing.T) {
	setupTestDB(t, "units_scope")

	factor := 1000.0
	other := models.MeasurementUnit{
		UserID:       1,
		Name:         "Kilogram",
		Kind:         models.UnitKindWeight,
		FactorToGram: &factor,
	}
	require.NoError(t, database.DB.Create(&other).Error)

	app := fiber.New()
	app.Use(asUser(2, models.RoleEditor))
	app.Get("/measurement-units", ListMeasurementUnitsHandler())

	req := httptest.NewRequest("GET", "/measurement-units", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var units []models.MeasurementUnit
	require.NoError(t, json.Unmarshal(data, &units))
	assert.Empty(t, units)
}
