package models

import (
	"github.com/google/uuid"
)

// Review is a customer's rating of a product. One review per user per
// product, enforced by the composite unique index.
type Review struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_review_user_product,unique" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_review_user_product,unique" json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"user_name"`
}
