package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Payment methods.
const (
	PaymentMethodCOD     = "COD"
	PaymentMethodPrepaid = "Prepaid"
)

// Payment statuses.
const (
	PaymentStatusPending  = "Pending"
	PaymentStatusPaid     = "Paid"
	PaymentStatusFailed   = "Failed"
	PaymentStatusRefunded = "Refunded"
)

// ShippingAddress is embedded in the order so the record stays complete even
// if the user later edits their address book.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

type Order struct {
	BaseModel
	UserID          uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	User            *User           `json:"user,omitempty"`
	OrderNumber     string          `gorm:"uniqueIndex" json:"order_number"`
	Items           []OrderItem     `json:"items,omitempty"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `gorm:"default:Pending" json:"payment_status"`
	OrderStatus     string          `gorm:"index" json:"order_status"`
	TotalAmount     float64         `json:"total_amount"`
	DiscountAmount  float64         `json:"discount_amount"`
	PromoCode       string          `json:"promo_code,omitempty"`
	TrackingNumber  string          `gorm:"index" json:"tracking_number,omitempty"`
	PlacedAt        time.Time       `json:"placed_at"`
}

// BeforeCreate derives the public order number from the order ID.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if err := o.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if o.OrderNumber == "" {
		o.OrderNumber = OrderNumberFor(o.ID)
	}
	return nil
}

// OrderNumberFor builds the customer-facing order number from an order ID:
// "OZME-" plus the last eight hex digits of the UUID, uppercased.
func OrderNumberFor(id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("OZME-%s", strings.ToUpper(hex[len(hex)-8:]))
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	Price     float64   `json:"price"`
}
