package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/models"
)

// AdminHandler serves dashboard aggregates for the admin panel.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// revenueScope limits sums to orders that count as revenue.
func revenueScope(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Order{}).
		Where("payment_status IN ?", []string{models.PaymentStatusPaid, models.PaymentStatusPending}).
		Where("order_status != ?", models.OrderStatusCancelled)
}

// DashboardSummary returns the aggregate counters the admin dashboard shows.
func (h *AdminHandler) DashboardSummary(c *fiber.Ctx) error {
	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	var totalRevenue float64
	if err := revenueScope(h.db).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var totalUsers int64
	if err := h.db.Model(&models.User{}).
		Where("role = ?", models.RoleUser).Count(&totalUsers).Error; err != nil {
		return err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	var todaysOrders int64
	if err := h.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Count(&todaysOrders).Error; err != nil {
		return err
	}

	var todaysRevenue float64
	if err := revenueScope(h.db).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&todaysRevenue).Error; err != nil {
		return err
	}

	type topProduct struct {
		ProductID     uuid.UUID `json:"product_id"`
		Name          string    `json:"name"`
		TotalQuantity int64     `json:"total_quantity"`
		TotalRevenue  float64   `json:"total_revenue"`
	}
	var topProducts []topProduct
	if err := h.db.Model(&models.OrderItem{}).
		Select("order_items.product_id, products.name, SUM(order_items.quantity) as total_quantity, SUM(order_items.price * order_items.quantity) as total_revenue").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("order_items.product_id, products.name").
		Order("total_quantity desc").
		Limit(5).
		Scan(&topProducts).Error; err != nil {
		return err
	}

	type statusCount struct {
		OrderStatus string
		Count       int64
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("order_status, count(*) as count").
		Group("order_status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.OrderStatus] = sc.Count
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"summary": fiber.Map{
				"totalOrders":   totalOrders,
				"totalRevenue":  totalRevenue,
				"totalUsers":    totalUsers,
				"todaysOrders":  todaysOrders,
				"todaysRevenue": todaysRevenue,
			},
			"topProducts":    topProducts,
			"ordersByStatus": ordersByStatus,
		},
	})
}
