package models

import (
	"github.com/google/uuid"
)

// CartItem is one pending line in a user's server-side cart.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_cart_user_product,unique" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity"`
	Size      string    `gorm:"index:idx_cart_user_product,unique;default:100ml" json:"size"`
}

// WishlistItem marks a product a user saved for later.
type WishlistItem struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_wishlist_user_product,unique" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_wishlist_user_product,unique" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
}
