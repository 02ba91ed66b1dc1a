package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/ozme/internal/models"
)

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app, db := newTestApp(t)
	_, userToken := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)
	_, adminToken := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/dashboard/summary", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/admin/dashboard/summary", userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/admin/dashboard/summary", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	app, db := newTestApp(t)
	user, _ := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)
	_, adminToken := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	order := seedOrder(t, db, user.ID, 500)

	resp := doJSON(t, app, http.MethodPatch, "/api/admin/orders/"+order.ID.String()+"/status", adminToken,
		map[string]interface{}{
			"orderStatus":    models.OrderStatusShipped,
			"trackingNumber": "AWB987654",
		})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Order
	require.NoError(t, db.First(&updated, "id = ?", order.ID).Error)
	require.Equal(t, models.OrderStatusShipped, updated.OrderStatus)
	require.Equal(t, "AWB987654", updated.TrackingNumber)

	// Unknown status values are refused.
	resp = doJSON(t, app, http.MethodPatch, "/api/admin/orders/"+order.ID.String()+"/status", adminToken,
		map[string]interface{}{"orderStatus": "Teleported"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Empty updates are refused.
	resp = doJSON(t, app, http.MethodPatch, "/api/admin/orders/"+order.ID.String()+"/status", adminToken,
		map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminCreateProductValidation(t *testing.T) {
	app, db := newTestApp(t)
	_, adminToken := seedUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/products/", adminToken, map[string]interface{}{
		"name":        "Noir Intense",
		"description": "Amber and oud",
		"price":       1200,
		"category":    "Oriental",
		"gender":      "Unisex",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got := dataField(t, decodeBody(t, resp), "product")
	require.Equal(t, "Noir Intense", got["name"])
	require.Equal(t, "100ml", got["size"])

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			name: "bad category",
			payload: map[string]interface{}{
				"name": "X", "description": "Y", "price": 100,
				"category": "Aquatic", "gender": "Unisex",
			},
		},
		{
			name: "zero price",
			payload: map[string]interface{}{
				"name": "X", "description": "Y", "price": 0,
				"category": "Floral", "gender": "Unisex",
			},
		},
		{
			name: "original price below selling price",
			payload: map[string]interface{}{
				"name": "X", "description": "Y", "price": 500, "originalPrice": 400,
				"category": "Floral", "gender": "Unisex",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/admin/products/", adminToken, tt.payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
