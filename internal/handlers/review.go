package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/middleware"
	"github.com/example/ozme/internal/models"
	"github.com/example/ozme/internal/utils"
)

// ReviewHandler manages product reviews.
type ReviewHandler struct {
	db *gorm.DB
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// ListReviews returns reviews for a product, newest first.
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.Review{}).
		Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return err
	}

	var reviews []models.Review
	if err := h.db.Where("product_id = ?", productID).
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&reviews).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"reviews": reviews,
			"pagination": fiber.Map{
				"page":  pg.Page,
				"limit": pg.Limit,
				"total": total,
				"pages": pg.Pages(total),
			},
		},
	})
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview records a review and refreshes the product's rating aggregate.
// One review per user per product.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	var existing models.Review
	if err := h.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "you have already reviewed this product")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	review := models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		UserName:  user.Name,
	}

	if err := h.db.Create(&review).Error; err != nil {
		return err
	}

	if err := h.refreshProductRating(productID); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"review": review}})
}

func (h *ReviewHandler) refreshProductRating(productID uuid.UUID) error {
	type aggregate struct {
		Avg   float64
		Count int64
	}
	var agg aggregate
	if err := h.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&agg).Error; err != nil {
		return err
	}

	return h.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":        agg.Avg,
			"reviews_count": agg.Count,
		}).Error
}
