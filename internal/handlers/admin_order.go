package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/models"
	"github.com/example/ozme/internal/utils"
)

// AdminOrderHandler manages orders on behalf of the admin panel.
type AdminOrderHandler struct {
	db *gorm.DB
}

// NewAdminOrderHandler constructs AdminOrderHandler.
func NewAdminOrderHandler(db *gorm.DB) *AdminOrderHandler {
	return &AdminOrderHandler{db: db}
}

// ListOrders returns all orders with status and date filters.
func (h *AdminOrderHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}
	if paymentStatus := c.Query("paymentStatus"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if startDate := c.Query("startDate"); startDate != "" {
		if t, err := time.Parse("2006-01-02", startDate); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		if t, err := time.Parse("2006-01-02", endDate); err == nil {
			query = query.Where("created_at <= ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("User").Preload("Items.Product").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"orders": orders,
			"pagination": fiber.Map{
				"page":  pg.Page,
				"limit": pg.Limit,
				"total": total,
				"pages": pg.Pages(total),
			},
		},
	})
}

// GetOrder returns one order with user and items.
func (h *AdminOrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("User").Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"order": order}})
}

type updateOrderStatusRequest struct {
	OrderStatus    string  `json:"orderStatus"`
	PaymentStatus  string  `json:"paymentStatus"`
	TrackingNumber *string `json:"trackingNumber"`
}

var validOrderStatuses = []string{
	models.OrderStatusPending,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

var validPaymentStatuses = []string{
	models.PaymentStatusPending,
	models.PaymentStatusPaid,
	models.PaymentStatusFailed,
	models.PaymentStatusRefunded,
}

// UpdateStatus transitions an order's status fields.
func (h *AdminOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	updates := map[string]interface{}{}
	if req.OrderStatus != "" {
		if !contains(validOrderStatuses, req.OrderStatus) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order status")
		}
		updates["order_status"] = req.OrderStatus
	}
	if req.PaymentStatus != "" {
		if !contains(validPaymentStatuses, req.PaymentStatus) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payment status")
		}
		updates["payment_status"] = req.PaymentStatus
	}
	if req.TrackingNumber != nil {
		updates["tracking_number"] = *req.TrackingNumber
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&order).Updates(updates).Error; err != nil {
		return err
	}

	if err := h.db.Preload("User").Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"order": order}})
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
