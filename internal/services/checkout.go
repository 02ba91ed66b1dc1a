package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/ozme/internal/models"
)

// Checkout errors reported to the client.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidTotal     = errors.New("invalid order total")
)

const defaultSize = "100ml"

// ProductStore looks up catalog products.
type ProductStore interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// CartStore reads and clears a user's server-side cart.
type CartStore interface {
	CartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

// CouponStore marks a coupon as used. Implementations treat an unknown code
// as a no-op.
type CouponStore interface {
	MarkUsed(ctx context.Context, code string, userID uuid.UUID) error
}

// OrderStore persists orders together with their items.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

// UserStore loads users for notification content.
type UserStore interface {
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Mailer sends transactional email. Failures are best-effort and never affect
// the checkout outcome.
type Mailer interface {
	SendOrderConfirmation(order *models.Order, user *models.User) error
}

// CheckoutItem is a caller-supplied line at checkout, used when the cart
// lives on the client instead of the server.
type CheckoutItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
}

// ShippingInput accepts either a combined name or separate first/last names.
type ShippingInput struct {
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Country   string `json:"country"`
}

// CheckoutRequest carries everything needed to place an order.
type CheckoutRequest struct {
	Shipping       ShippingInput  `json:"shippingAddress"`
	PaymentMethod  string         `json:"paymentMethod"`
	PromoCode      string         `json:"promoCode"`
	DiscountAmount float64        `json:"discountAmount"`
	Items          []CheckoutItem `json:"items"`
	TotalAmount    *float64       `json:"totalAmount"`
}

// Checkout runs the order placement pipeline: resolve line items, aggregate
// pricing, record the order, and dispatch the confirmation email.
type Checkout struct {
	products ProductStore
	carts    CartStore
	coupons  CouponStore
	orders   OrderStore
	users    UserStore
	mailer   Mailer
}

// NewCheckout constructs the checkout service.
func NewCheckout(products ProductStore, carts CartStore, coupons CouponStore, orders OrderStore, users UserStore, mailer Mailer) *Checkout {
	return &Checkout{
		products: products,
		carts:    carts,
		coupons:  coupons,
		orders:   orders,
		users:    users,
		mailer:   mailer,
	}
}

// PlaceOrder executes the pipeline for one authenticated user. Stages run
// strictly in sequence; any error before the order write aborts with no
// partial state.
func (s *Checkout) PlaceOrder(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*models.Order, error) {
	items, fromCart, err := s.resolveItems(ctx, userID, req.Items)
	if err != nil {
		return nil, err
	}

	total, err := s.aggregateTotal(ctx, userID, items, req)
	if err != nil {
		return nil, err
	}

	order, err := s.recordOrder(ctx, userID, items, total, req)
	if err != nil {
		return nil, err
	}

	if fromCart {
		// Clear-on-success policy; the order is already committed, so a
		// failed clear is logged and left for the next checkout.
		if err := s.carts.ClearCart(ctx, userID); err != nil {
			log.Printf("[Checkout] failed to clear cart for user %s: %v", userID, err)
		}
	}

	s.dispatchConfirmation(ctx, order, req.PaymentMethod)

	return order, nil
}

// resolveItems turns caller-supplied items or the server-side cart into
// priced order lines. Read-only.
func (s *Checkout) resolveItems(ctx context.Context, userID uuid.UUID, requested []CheckoutItem) ([]models.OrderItem, bool, error) {
	if len(requested) > 0 {
		items := make([]models.OrderItem, 0, len(requested))
		for _, item := range requested {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return nil, false, fmt.Errorf("%w: %s", ErrInvalidProductID, item.ProductID)
			}

			product, err := s.products.FindProduct(ctx, productID)
			if err != nil {
				return nil, false, err
			}

			quantity := item.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			size := item.Size
			if size == "" {
				size = defaultSize
			}
			// Caller-supplied price wins over the stored product price.
			price := item.Price
			if price == 0 {
				price = product.Price
			}

			items = append(items, models.OrderItem{
				ProductID: productID,
				Quantity:  quantity,
				Size:      size,
				Price:     price,
			})
		}
		return items, false, nil
	}

	cartItems, err := s.carts.CartItems(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if len(cartItems) == 0 {
		return nil, false, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		var price float64
		if item.Product != nil {
			price = item.Product.Price
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Price:     price,
		})
	}
	return items, true, nil
}

// aggregateTotal computes the payable total and consumes the coupon when a
// discount was applied upstream.
func (s *Checkout) aggregateTotal(ctx context.Context, userID uuid.UUID, items []models.OrderItem, req CheckoutRequest) (float64, error) {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	// A caller-supplied total is authoritative: it means the discount was
	// already applied upstream.
	total := subtotal - req.DiscountAmount
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}

	if total < 0 {
		return 0, ErrInvalidTotal
	}

	if req.PromoCode != "" && req.DiscountAmount > 0 {
		if err := s.coupons.MarkUsed(ctx, req.PromoCode, userID); err != nil {
			return 0, err
		}
	}

	return total, nil
}

// recordOrder persists the order document with its items in one write.
func (s *Checkout) recordOrder(ctx context.Context, userID uuid.UUID, items []models.OrderItem, total float64, req CheckoutRequest) (*models.Order, error) {
	method := models.PaymentMethodCOD
	status := models.OrderStatusProcessing
	if req.PaymentMethod == "ONLINE" {
		method = models.PaymentMethodPrepaid
		status = models.OrderStatusPending
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: formatShippingAddress(req.Shipping),
		PaymentMethod:   method,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     status,
		TotalAmount:     total,
		DiscountAmount:  req.DiscountAmount,
		PromoCode:       strings.ToUpper(req.PromoCode),
		PlacedAt:        time.Now(),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// dispatchConfirmation emails the customer for COD orders. Prepaid orders are
// confirmed after payment capture instead.
func (s *Checkout) dispatchConfirmation(ctx context.Context, order *models.Order, paymentMethod string) {
	if paymentMethod == "ONLINE" || s.mailer == nil {
		return
	}

	user, err := s.users.FindUser(ctx, order.UserID)
	if err != nil {
		log.Printf("[Checkout] failed to load user %s for confirmation email: %v", order.UserID, err)
		return
	}

	if err := s.mailer.SendOrderConfirmation(order, user); err != nil {
		log.Printf("[Checkout] failed to send confirmation email for order %s: %v", order.OrderNumber, err)
	}
}

func formatShippingAddress(in ShippingInput) models.ShippingAddress {
	name := in.Name
	if name == "" {
		name = strings.TrimSpace(in.FirstName + " " + in.LastName)
	}
	if name == "" {
		name = "Customer"
	}

	country := in.Country
	if country == "" {
		country = "India"
	}

	return models.ShippingAddress{
		Name:    name,
		Phone:   in.Phone,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Pincode: in.Pincode,
		Country: country,
	}
}
