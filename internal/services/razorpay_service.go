package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

const razorpayBaseURL = "https://api.razorpay.com/v1"

// GatewayOrder is the hosted payment provider's order handle returned to the
// client for capture.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentGateway abstracts the hosted payment provider so order handling
// stays independent of the vendor.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount float64, receipt string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// RazorpayGateway implements PaymentGateway against the Razorpay REST API.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
}

// NewRazorpayGateway constructs the gateway client.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{keyID: keyID, keySecret: keySecret, baseURL: razorpayBaseURL}
}

// Configured reports whether gateway credentials are present.
func (g *RazorpayGateway) Configured() bool {
	return g.keyID != "" && g.keySecret != ""
}

type razorpayOrderRequest struct {
	Amount         int64  `json:"amount"` // paise
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrder registers an order with the gateway. Amount is in rupees and
// converted to paise on the wire.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount float64, receipt string) (*GatewayOrder, error) {
	if !g.Configured() {
		return nil, fmt.Errorf("razorpay credentials not configured")
	}

	payload := razorpayOrderRequest{
		Amount:         int64(math.Round(amount * 100)),
		Currency:       "INR",
		Receipt:        receipt,
		PaymentCapture: 1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay returned status %d: %s", resp.StatusCode, respBody)
	}

	var order GatewayOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("razorpay decode order: %w", err)
	}

	return &order, nil
}

// VerifySignature checks the HMAC-SHA256 signature Razorpay sends after a
// successful capture.
func (g *RazorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	if g.keySecret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
