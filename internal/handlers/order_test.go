package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/models"
)

func TestCreateOrderFromCart(t *testing.T) {
	app, db := newTestApp(t)
	user, token := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)
	product := seedProduct(t, db, "Noir Intense", "Oriental", 500)

	require.NoError(t, db.Create(&models.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
		Size:      "100ml",
	}).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/orders/", token, map[string]interface{}{
		"shippingAddress": validShippingPayload(),
		"paymentMethod":   "COD",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, true, body["success"])
	require.Equal(t, "order created successfully", body["message"])

	orderBody := dataField(t, body, "order")
	require.Equal(t, float64(1000), orderBody["total_amount"])

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, "user_id = ?", user.ID).Error)
	require.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	require.Equal(t, models.OrderStatusProcessing, order.OrderStatus)
	require.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	require.Equal(t, float64(1000), order.TotalAmount)
	require.True(t, strings.HasPrefix(order.OrderNumber, "OZME-"))
	require.Len(t, order.Items, 1)
	require.Equal(t, 2, order.Items[0].Quantity)
	require.Equal(t, float64(500), order.Items[0].Price)

	// The cart is cleared only after a successful checkout.
	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining).Error)
	require.Zero(t, remaining)
}

func TestCreateOrderOnlineBecomesPrepaidPending(t *testing.T) {
	app, db := newTestApp(t)
	user, token := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)
	product := seedProduct(t, db, "Rose Veil", "Floral", 750)

	// A leftover cart line must survive a caller-items checkout.
	require.NoError(t, db.Create(&models.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  1,
		Size:      "50ml",
	}).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/orders/", token, map[string]interface{}{
		"shippingAddress": validShippingPayload(),
		"paymentMethod":   "ONLINE",
		"items": []map[string]interface{}{
			{"productId": product.ID.String(), "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	require.NoError(t, db.First(&order, "user_id = ?", user.ID).Error)
	require.Equal(t, models.PaymentMethodPrepaid, order.PaymentMethod)
	require.Equal(t, models.OrderStatusPending, order.OrderStatus)
	require.Equal(t, float64(1500), order.TotalAmount)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining).Error)
	require.EqualValues(t, 1, remaining)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	app, db := newTestApp(t)
	_, token := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)

	resp := doJSON(t, app, http.MethodPost, "/api/orders/", token, map[string]interface{}{
		"shippingAddress": validShippingPayload(),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, false, body["success"])
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	app, db := newTestApp(t)
	user, token := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)

	resp := doJSON(t, app, http.MethodPost, "/api/orders/", token, map[string]interface{}{
		"shippingAddress": validShippingPayload(),
		"items": []map[string]interface{}{
			{"productId": uuid.NewString(), "quantity": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateOrderMissingShippingField(t *testing.T) {
	app, db := newTestApp(t)
	_, token := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)

	shipping := validShippingPayload()
	delete(shipping, "phone")

	resp := doJSON(t, app, http.MethodPost, "/api/orders/", token, map[string]interface{}{
		"shippingAddress": shipping,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "shipping phone is required", body["message"])
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/orders/", "", map[string]interface{}{
		"shippingAddress": validShippingPayload(),
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, total float64) models.Order {
	t.Helper()

	order := models.Order{
		UserID:        userID,
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   models.OrderStatusProcessing,
		TotalAmount:   total,
		PlacedAt:      time.Now(),
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestListUserOrders(t *testing.T) {
	app, db := newTestApp(t)
	user, token := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)
	other, _ := seedUser(t, db, "Ravi", "ravi@example.com", models.RoleUser)

	seedOrder(t, db, user.ID, 500)
	seedOrder(t, db, user.ID, 900)
	seedOrder(t, db, other.ID, 300)

	resp := doJSON(t, app, http.MethodGet, "/api/orders/user", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	orders := data["orders"].([]interface{})
	require.Len(t, orders, 2)
}

func TestGetOrderOwnership(t *testing.T) {
	app, db := newTestApp(t)
	owner, ownerToken := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)
	_, strangerToken := seedUser(t, db, "Ravi", "ravi@example.com", models.RoleUser)
	_, adminToken := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)

	order := seedOrder(t, db, owner.ID, 500)
	path := "/api/orders/" + order.ID.String()

	resp := doJSON(t, app, http.MethodGet, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, path, strangerToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, path, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTrackOrder(t *testing.T) {
	app, db := newTestApp(t)
	user, _ := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)
	order := seedOrder(t, db, user.ID, 1200)

	// By public order number.
	resp := doJSON(t, app, http.MethodGet, "/api/orders/track/"+order.OrderNumber, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := dataField(t, decodeBody(t, resp), "order")
	require.Equal(t, order.ID.String(), got["id"])

	// By internal ID.
	resp = doJSON(t, app, http.MethodGet, "/api/orders/track/"+order.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// By tracking number.
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("tracking_number", "AWB123456").Error)
	resp = doJSON(t, app, http.MethodGet, "/api/orders/track/AWB123456", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Unknown identifier.
	resp = doJSON(t, app, http.MethodGet, "/api/orders/track/OZME-FFFFFFFF", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
