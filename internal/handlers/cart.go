package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/middleware"
	"github.com/example/ozme/internal/models"
)

// CartHandler manages the server-side cart.
type CartHandler struct {
	db *gorm.DB
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

// GetCart returns the user's cart items with a subtotal.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.CartItem
	if err := h.db.Preload("Product").Where("user_id = ?", userID).
		Order("created_at asc").Find(&items).Error; err != nil {
		return err
	}

	var subtotal float64
	for _, item := range items {
		if item.Product != nil {
			subtotal += item.Product.Price * float64(item.Quantity)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items":    items,
			"subtotal": subtotal,
		},
	})
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

// AddItem adds a product to the cart, merging quantities for an existing
// product+size row.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	size := req.Size
	if size == "" {
		size = product.Size
	}

	var item models.CartItem
	err = h.db.Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, size).
		First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := h.db.Save(&item).Error; err != nil {
			return err
		}
	case err == gorm.ErrRecordNotFound:
		item = models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			Size:      size,
		}
		if err := h.db.Create(&item).Error; err != nil {
			return err
		}
	default:
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"item": item}})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets the quantity on a cart row; zero or less removes it.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var item models.CartItem
	if err := h.db.First(&item, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	if req.Quantity <= 0 {
		if err := h.db.Delete(&item).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "message": "item removed"})
	}

	item.Quantity = req.Quantity
	if err := h.db.Save(&item).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"item": item}})
}

// RemoveItem deletes one cart row.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.CartItem{}, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ClearCart removes all cart rows for the user.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
