package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/middleware"
	"github.com/example/ozme/internal/models"
	"github.com/example/ozme/internal/services"
)

// PaymentHandler drives the hosted-gateway capture flow for prepaid orders.
type PaymentHandler struct {
	db      *gorm.DB
	gateway services.PaymentGateway
	mailer  services.Mailer
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(db *gorm.DB, gateway services.PaymentGateway, mailer services.Mailer) *PaymentHandler {
	return &PaymentHandler{db: db, gateway: gateway, mailer: mailer}
}

type createPaymentRequest struct {
	OrderID string `json:"orderId"`
}

// CreatePayment registers a gateway order for a pending prepaid order.
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ? AND user_id = ?", orderID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if order.PaymentMethod != models.PaymentMethodPrepaid {
		return fiber.NewError(fiber.StatusBadRequest, "order is not a prepaid order")
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return fiber.NewError(fiber.StatusBadRequest, "order is already paid")
	}

	gatewayOrder, err := h.gateway.CreateOrder(c.Context(), order.TotalAmount, order.ID.String())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"gatewayOrderId": gatewayOrder.ID,
			"amount":         gatewayOrder.Amount,
			"currency":       gatewayOrder.Currency,
		},
	})
}

type verifyPaymentRequest struct {
	OrderID           string `json:"orderId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

// VerifyPayment checks the capture signature, marks the order paid, and sends
// the confirmation email prepaid orders skipped at checkout.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	if !h.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return fiber.NewError(fiber.StatusBadRequest, "payment signature verification failed")
	}

	var order models.Order
	if err := h.db.Preload("Items.Product").
		First(&order, "id = ? AND user_id = ?", orderID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if err := h.db.Model(&order).Updates(map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"order_status":   models.OrderStatusProcessing,
		"updated_at":     time.Now(),
	}).Error; err != nil {
		return err
	}

	if h.mailer != nil {
		var user models.User
		if err := h.db.First(&user, "id = ?", userID).Error; err == nil {
			if err := h.mailer.SendOrderConfirmation(&order, &user); err != nil {
				log.Printf("[Payment] failed to send confirmation email for order %s: %v", order.OrderNumber, err)
			}
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"order": order}})
}
