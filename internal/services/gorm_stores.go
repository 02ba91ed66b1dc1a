package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/models"
)

// GormStores implements the checkout store interfaces over a gorm database.
type GormStores struct {
	db *gorm.DB
}

// NewGormStores wraps db with the checkout store implementations.
func NewGormStores(db *gorm.DB) *GormStores {
	return &GormStores{db: db}
}

// FindProduct loads a product by ID. Missing rows map to ErrProductNotFound.
func (s *GormStores) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// CartItems returns the user's cart with products preloaded.
func (s *GormStores) CartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ClearCart removes every cart row for the user.
func (s *GormStores) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// MarkUsed bumps the coupon usage counter and records the redemption. An
// unknown code is a no-op, matching checkout semantics where the discount was
// validated earlier in the session.
func (s *GormStores) MarkUsed(ctx context.Context, code string, userID uuid.UUID) error {
	var coupon models.Coupon
	err := s.db.WithContext(ctx).
		First(&coupon, "code = ?", strings.ToUpper(code)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&coupon).
			Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
			return err
		}
		redemption := models.CouponRedemption{CouponID: coupon.ID, UserID: userID}
		return tx.Create(&redemption).Error
	})
}

// CreateOrder writes the order and its items in a single transaction.
func (s *GormStores) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// FindUser loads a user by ID.
func (s *GormStores) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
