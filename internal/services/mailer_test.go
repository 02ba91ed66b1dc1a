package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/ozme/internal/config"
	"github.com/example/ozme/internal/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0.00"},
		{499, "₹499.00"},
		{1250.50, "₹1,250.50"},
		{100000, "₹100,000.00"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatAmount(tt.amount))
	}
}

func TestSendOrderConfirmationSkipsWhenUnconfigured(t *testing.T) {
	mailer := NewSMTPMailer(&config.Config{})

	order := &models.Order{OrderNumber: "OZME-D5E6F708"}
	user := &models.User{Name: "Asha", Email: "asha@example.com"}
	require.NoError(t, mailer.SendOrderConfirmation(order, user))
}

func TestOrderConfirmationBody(t *testing.T) {
	order := &models.Order{
		OrderNumber:    "OZME-D5E6F708",
		TotalAmount:    900,
		DiscountAmount: 100,
		PaymentMethod:  models.PaymentMethodCOD,
		OrderStatus:    models.OrderStatusProcessing,
		Items: []models.OrderItem{
			{Quantity: 2, Size: "100ml", Price: 500,
				Product: &models.Product{Name: "Noir Intense"}},
		},
		ShippingAddress: models.ShippingAddress{
			Name: "Asha Verma", Address: "12 MG Road",
			City: "Bengaluru", State: "Karnataka", Pincode: "560001", Country: "India",
		},
	}
	user := &models.User{Name: "Asha", Email: "asha@example.com"}

	body := orderConfirmationBody(order, user)
	require.Contains(t, body, "OZME-D5E6F708")
	require.Contains(t, body, "Noir Intense (100ml)")
	require.Contains(t, body, "Discount: -₹100.00")
	require.Contains(t, body, "Total: ₹900.00")
	require.Contains(t, body, "Bengaluru")
}
