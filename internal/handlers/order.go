package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/middleware"
	"github.com/example/ozme/internal/models"
	"github.com/example/ozme/internal/services"
)

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	db       *gorm.DB
	checkout *services.Checkout
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, checkout *services.Checkout) *OrderHandler {
	return &OrderHandler{db: db, checkout: checkout}
}

// CreateOrder places an order from the server-side cart or a caller-supplied
// item list.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if msg := validateShipping(req.Shipping); msg != "" {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	order, err := h.checkout.PlaceOrder(c.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrInvalidProductID),
			errors.Is(err, services.ErrProductNotFound),
			errors.Is(err, services.ErrInvalidTotal):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "order created successfully",
		"data":    fiber.Map{"order": order},
	})
}

// validateShipping rejects requests missing required address fields. The name
// is allowed to be empty because the recorder coalesces it.
func validateShipping(in services.ShippingInput) string {
	switch {
	case in.Phone == "":
		return "shipping phone is required"
	case in.Address == "":
		return "shipping address is required"
	case in.City == "":
		return "shipping city is required"
	case in.State == "":
		return "shipping state is required"
	case in.Pincode == "":
		return "shipping pincode is required"
	}
	return ""
}

// ListUserOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) ListUserOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var orders []models.Order
	if err := h.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("placed_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"orders": orders}})
}

// GetOrder returns one order. Owners and admins may view it; other
// authenticated users are refused.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if userID, ok := middleware.GetCurrentUserID(c); ok && userID != order.UserID {
		var user models.User
		if err := h.db.First(&user, "id = ?", userID).Error; err != nil || !user.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "access denied")
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"order": order}})
}

// TrackOrder looks up an order by ID, tracking number, or public order
// number (OZME-XXXXXXXX).
func (h *OrderHandler) TrackOrder(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var order models.Order

	if id, err := uuid.Parse(identifier); err == nil {
		if err := h.db.Preload("Items.Product").
			First(&order, "id = ?", id).Error; err == nil {
			return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"order": order}})
		}
	}

	if err := h.db.Preload("Items.Product").
		Where("tracking_number = ? OR order_number = ?", identifier, identifier).
		First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"order": order}})
}
