package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/middleware"
	"github.com/example/ozme/internal/models"
)

// CouponHandler validates discount codes at checkout.
type CouponHandler struct {
	db *gorm.DB
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(db *gorm.DB) *CouponHandler {
	return &CouponHandler{db: db}
}

type validateCouponRequest struct {
	Code        string  `json:"code"`
	OrderAmount float64 `json:"orderAmount"`
}

// Validate checks a coupon against the pending order amount and returns the
// discount it would grant. The coupon is consumed later, at order placement.
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	if _, ok := middleware.GetCurrentUserID(c); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req validateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "coupon code is required")
	}

	var coupon models.Coupon
	if err := h.db.First(&coupon, "code = ?", code).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "invalid coupon code")
		}
		return err
	}

	if err := coupon.Validate(req.OrderAmount, time.Now()); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	discount := coupon.DiscountFor(req.OrderAmount)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"code":           coupon.Code,
			"discountType":   coupon.DiscountType,
			"discountValue":  coupon.DiscountValue,
			"discountAmount": discount,
			"total":          req.OrderAmount - discount,
		},
	})
}
