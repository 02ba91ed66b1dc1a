package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/ozme/internal/config"
	"github.com/example/ozme/internal/database"
	"github.com/example/ozme/internal/handlers"
	"github.com/example/ozme/internal/models"
	"github.com/example/ozme/internal/routes"
	"github.com/example/ozme/internal/utils"
)

const testSecret = "handler-test-secret"

// newTestApp builds the full route tree against an in-memory database. SMTP
// and Razorpay credentials stay empty, so the mailer skips sends.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:    testSecret,
		TokenExpires: time.Hour,
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.Register(app, db, cfg)

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(testSecret, user.ID, time.Hour)
	require.NoError(t, err)

	return user, token
}

func seedProduct(t *testing.T, db *gorm.DB, name, category string, price float64) models.Product {
	t.Helper()

	product := models.Product{
		Name:          name,
		Description:   fmt.Sprintf("%s eau de parfum", name),
		Price:         price,
		Category:      category,
		Gender:        "Unisex",
		Size:          "100ml",
		InStock:       true,
		StockQuantity: 10,
		Active:        true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func dataField(t *testing.T, body map[string]interface{}, key string) map[string]interface{} {
	t.Helper()

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	value, ok := data[key].(map[string]interface{})
	require.True(t, ok, "data has no %q object: %v", key, data)
	return value
}

func validShippingPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Asha Verma",
		"phone":   "9876543210",
		"address": "12 MG Road",
		"city":    "Bengaluru",
		"state":   "Karnataka",
		"pincode": "560001",
	}
}
