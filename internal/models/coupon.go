package models

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Discount types.
const (
	DiscountTypePercent = "percent"
	DiscountTypeFixed   = "fixed"
)

// Coupon validation errors.
var (
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	ErrCouponMinOrder  = errors.New("order amount below coupon minimum")
)

// Coupon is a discount code validated and consumed at checkout. Codes are
// stored uppercase and matched case-insensitively.
type Coupon struct {
	BaseModel
	Code           string     `gorm:"uniqueIndex" json:"code"`
	DiscountType   string     `json:"discount_type"` // percent|fixed
	DiscountValue  float64    `json:"discount_value"`
	MinOrderAmount float64    `json:"min_order_amount"`
	MaxUses        int        `json:"max_uses"` // 0 means unlimited
	UsedCount      int        `json:"used_count"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Active         bool       `gorm:"default:true" json:"active"`
}

// CouponRedemption records one use of a coupon by a user.
type CouponRedemption struct {
	BaseModel
	CouponID uuid.UUID  `gorm:"type:uuid;index" json:"coupon_id"`
	UserID   uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	OrderID  *uuid.UUID `gorm:"type:uuid" json:"order_id,omitempty"`
}

// Validate checks whether the coupon can be applied to an order of the given
// amount at the given time.
func (c *Coupon) Validate(orderAmount float64, now time.Time) error {
	if !c.Active {
		return ErrCouponInactive
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return ErrCouponExpired
	}
	if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
		return ErrCouponExhausted
	}
	if orderAmount < c.MinOrderAmount {
		return ErrCouponMinOrder
	}
	return nil
}

// DiscountFor computes the discount amount for an order total. The result
// never exceeds the order amount.
func (c *Coupon) DiscountFor(orderAmount float64) float64 {
	var discount float64
	switch c.DiscountType {
	case DiscountTypePercent:
		discount = orderAmount * c.DiscountValue / 100
	default:
		discount = c.DiscountValue
	}
	return math.Min(discount, orderAmount)
}
