package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func signCapture(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	gateway := NewRazorpayGateway("rzp_test_key", "rzp_test_secret")

	signature := signCapture("rzp_test_secret", "order_ABC123", "pay_XYZ789")
	require.True(t, gateway.VerifySignature("order_ABC123", "pay_XYZ789", signature))

	require.False(t, gateway.VerifySignature("order_ABC123", "pay_XYZ789", "tampered"))
	require.False(t, gateway.VerifySignature("order_other", "pay_XYZ789", signature))

	wrongSecret := signCapture("wrong_secret", "order_ABC123", "pay_XYZ789")
	require.False(t, gateway.VerifySignature("order_ABC123", "pay_XYZ789", wrongSecret))
}

func TestVerifySignatureUnconfigured(t *testing.T) {
	gateway := NewRazorpayGateway("", "")
	require.False(t, gateway.VerifySignature("order_ABC123", "pay_XYZ789", signCapture("", "order_ABC123", "pay_XYZ789")))
}

func TestCreateOrderUnconfigured(t *testing.T) {
	gateway := NewRazorpayGateway("", "")
	_, err := gateway.CreateOrder(context.Background(), 100, "receipt-1")
	require.Error(t, err)
}
