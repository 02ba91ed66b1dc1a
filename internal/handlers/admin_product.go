package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/models"
	"github.com/example/ozme/internal/utils"
)

// AdminProductHandler manages the product catalog from the admin panel.
type AdminProductHandler struct {
	db *gorm.DB
}

// NewAdminProductHandler constructs AdminProductHandler.
func NewAdminProductHandler(db *gorm.DB) *AdminProductHandler {
	return &AdminProductHandler{db: db}
}

// ListProducts returns all products including inactive ones.
func (h *AdminProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if gender := c.Query("gender"); gender != "" {
		query = query.Where("gender = ?", gender)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"products": products,
			"pagination": fiber.Map{
				"page":  pg.Page,
				"limit": pg.Limit,
				"total": total,
				"pages": pg.Pages(total),
			},
		},
	})
}

type productRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Gender        string   `json:"gender"`
	Size          string   `json:"size"`
	Tag           string   `json:"tag"`
	InStock       *bool    `json:"inStock"`
	StockQuantity int      `json:"stockQuantity"`
	Active        *bool    `json:"active"`
	OnAmazon      bool     `json:"onAmazon"`
	OnFlipkart    bool     `json:"onFlipkart"`
	OnMyntra      bool     `json:"onMyntra"`
}

func (r productRequest) validate() string {
	switch {
	case r.Name == "":
		return "name is required"
	case r.Description == "":
		return "description is required"
	case r.Price <= 0:
		return "price must be positive"
	case !models.ValidCategory(r.Category):
		return "invalid category"
	case !models.ValidGender(r.Gender):
		return "invalid gender"
	case r.OriginalPrice != 0 && r.OriginalPrice < r.Price:
		return "original price must be greater than or equal to selling price"
	}
	return ""
}

// CreateProduct adds a product to the catalog.
func (h *AdminProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Images:        req.Images,
		Category:      req.Category,
		Gender:        req.Gender,
		Size:          req.Size,
		Tag:           req.Tag,
		StockQuantity: req.StockQuantity,
		InStock:       true,
		Active:        true,
		OnAmazon:      req.OnAmazon,
		OnFlipkart:    req.OnFlipkart,
		OnMyntra:      req.OnMyntra,
	}
	if product.Size == "" {
		product.Size = "100ml"
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"product": product}})
}

// UpdateProduct edits an existing product.
func (h *AdminProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.OriginalPrice = req.OriginalPrice
	if req.Images != nil {
		product.Images = req.Images
	}
	product.Category = req.Category
	product.Gender = req.Gender
	if req.Size != "" {
		product.Size = req.Size
	}
	product.Tag = req.Tag
	product.StockQuantity = req.StockQuantity
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	product.OnAmazon = req.OnAmazon
	product.OnFlipkart = req.OnFlipkart
	product.OnMyntra = req.OnMyntra

	if err := h.db.Save(&product).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"product": product}})
}

// DeleteProduct removes a product from the catalog.
func (h *AdminProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "product deleted"})
}
