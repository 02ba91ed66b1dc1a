package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/models"
)

func seedCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) models.Coupon {
	t.Helper()
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

func TestValidateCoupon(t *testing.T) {
	app, db := newTestApp(t)
	_, token := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)

	seedCoupon(t, db, models.Coupon{
		Code:          "WELCOME10",
		DiscountType:  models.DiscountTypePercent,
		DiscountValue: 10,
		Active:        true,
	})

	// Lowercase input matches the stored uppercase code.
	resp := doJSON(t, app, http.MethodPost, "/api/coupons/validate", token, map[string]interface{}{
		"code":        "welcome10",
		"orderAmount": 1000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	require.Equal(t, "WELCOME10", data["code"])
	require.Equal(t, float64(100), data["discountAmount"])
	require.Equal(t, float64(900), data["total"])
}

func TestValidateCouponRejections(t *testing.T) {
	app, db := newTestApp(t)
	_, token := seedUser(t, db, "Asha", "asha@example.com", models.RoleUser)

	expired := time.Now().Add(-time.Hour)
	seedCoupon(t, db, models.Coupon{
		Code: "EXPIRED", DiscountType: models.DiscountTypeFixed, DiscountValue: 50,
		ExpiresAt: &expired, Active: true,
	})
	seedCoupon(t, db, models.Coupon{
		Code: "BIGSPEND", DiscountType: models.DiscountTypeFixed, DiscountValue: 100,
		MinOrderAmount: 2000, Active: true,
	})

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"unknown code", map[string]interface{}{"code": "NOPE", "orderAmount": 1000}},
		{"expired", map[string]interface{}{"code": "EXPIRED", "orderAmount": 1000}},
		{"below minimum", map[string]interface{}{"code": "BIGSPEND", "orderAmount": 500}},
		{"missing code", map[string]interface{}{"orderAmount": 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/coupons/validate", token, tt.payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestValidateCouponRequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/coupons/validate", "", map[string]interface{}{
		"code": "WELCOME10", "orderAmount": 1000,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
