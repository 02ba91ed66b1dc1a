package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/models"
	"github.com/example/ozme/internal/utils"
)

// AdminCouponHandler manages discount codes from the admin panel.
type AdminCouponHandler struct {
	db *gorm.DB
}

// NewAdminCouponHandler constructs AdminCouponHandler.
func NewAdminCouponHandler(db *gorm.DB) *AdminCouponHandler {
	return &AdminCouponHandler{db: db}
}

// ListCoupons returns all coupons.
func (h *AdminCouponHandler) ListCoupons(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.Coupon{}).Count(&total).Error; err != nil {
		return err
	}

	var coupons []models.Coupon
	if err := h.db.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&coupons).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"coupons": coupons,
			"pagination": fiber.Map{
				"page":  pg.Page,
				"limit": pg.Limit,
				"total": total,
				"pages": pg.Pages(total),
			},
		},
	})
}

type couponRequest struct {
	Code           string     `json:"code"`
	DiscountType   string     `json:"discountType"`
	DiscountValue  float64    `json:"discountValue"`
	MinOrderAmount float64    `json:"minOrderAmount"`
	MaxUses        int        `json:"maxUses"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	Active         *bool      `json:"active"`
}

func (r couponRequest) validate() string {
	switch {
	case strings.TrimSpace(r.Code) == "":
		return "code is required"
	case r.DiscountType != models.DiscountTypePercent && r.DiscountType != models.DiscountTypeFixed:
		return "discount type must be percent or fixed"
	case r.DiscountValue <= 0:
		return "discount value must be positive"
	case r.DiscountType == models.DiscountTypePercent && r.DiscountValue > 100:
		return "percent discount cannot exceed 100"
	}
	return ""
}

// CreateCoupon adds a coupon. Codes are stored uppercase.
func (h *AdminCouponHandler) CreateCoupon(c *fiber.Ctx) error {
	var req couponRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	coupon := models.Coupon{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxUses:        req.MaxUses,
		ExpiresAt:      req.ExpiresAt,
		Active:         true,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	var existing models.Coupon
	if err := h.db.Where("code = ?", coupon.Code).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "coupon code already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := h.db.Create(&coupon).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"coupon": coupon}})
}

// UpdateCoupon edits an existing coupon.
func (h *AdminCouponHandler) UpdateCoupon(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var coupon models.Coupon
	if err := h.db.First(&coupon, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "coupon not found")
		}
		return err
	}

	var req couponRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	coupon.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	coupon.DiscountType = req.DiscountType
	coupon.DiscountValue = req.DiscountValue
	coupon.MinOrderAmount = req.MinOrderAmount
	coupon.MaxUses = req.MaxUses
	coupon.ExpiresAt = req.ExpiresAt
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := h.db.Save(&coupon).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"coupon": coupon}})
}

// DeleteCoupon removes a coupon.
func (h *AdminCouponHandler) DeleteCoupon(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.Coupon{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "coupon not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "coupon deleted"})
}
