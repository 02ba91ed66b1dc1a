package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ozme/internal/config"
	"github.com/example/ozme/internal/handlers"
	"github.com/example/ozme/internal/middleware"
	"github.com/example/ozme/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	mailer := services.NewSMTPMailer(cfg)
	gateway := services.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	stores := services.NewGormStores(db)
	checkout := services.NewCheckout(stores, stores, stores, stores, stores, mailer)

	authHandler := handlers.NewAuthHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	wishlistHandler := handlers.NewWishlistHandler(db)
	orderHandler := handlers.NewOrderHandler(db, checkout)
	couponHandler := handlers.NewCouponHandler(db)
	userHandler := handlers.NewUserHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db, gateway, mailer)
	adminHandler := handlers.NewAdminHandler(db)
	adminOrderHandler := handlers.NewAdminOrderHandler(db)
	adminProductHandler := handlers.NewAdminProductHandler(db)
	adminCouponHandler := handlers.NewAdminCouponHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Public catalog
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Get("/:id/reviews", reviewHandler.ListReviews)
	products.Post("/:id/reviews", middleware.AuthMiddleware(cfg), reviewHandler.CreateReview)

	// Order lookup works with or without a token
	orders := api.Group("/orders")
	orders.Get("/track/:identifier", middleware.OptionalAuthMiddleware(cfg), orderHandler.TrackOrder)
	orders.Get("/user", middleware.AuthMiddleware(cfg), orderHandler.ListUserOrders)
	orders.Post("/", middleware.AuthMiddleware(cfg), orderHandler.CreateOrder)
	orders.Get("/:id", middleware.OptionalAuthMiddleware(cfg), orderHandler.GetOrder)

	// Protected customer routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	cart := protected.Group("/cart")
	cart.Get("/", cartHandler.GetCart)
	cart.Post("/", cartHandler.AddItem)
	cart.Put("/:id", cartHandler.UpdateItem)
	cart.Delete("/:id", cartHandler.RemoveItem)
	cart.Delete("/", cartHandler.ClearCart)

	wishlist := protected.Group("/wishlist")
	wishlist.Get("/", wishlistHandler.List)
	wishlist.Post("/", wishlistHandler.Add)
	wishlist.Delete("/:productId", wishlistHandler.Remove)

	protected.Post("/coupons/validate", couponHandler.Validate)

	users := protected.Group("/users/me")
	users.Put("/", userHandler.UpdateProfile)
	users.Get("/addresses", userHandler.ListAddresses)
	users.Post("/addresses", userHandler.CreateAddress)
	users.Put("/addresses/:id", userHandler.UpdateAddress)
	users.Delete("/addresses/:id", userHandler.DeleteAddress)

	payments := protected.Group("/payments")
	payments.Post("/create", paymentHandler.CreatePayment)
	payments.Post("/verify", paymentHandler.VerifyPayment)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly(db))

	admin.Get("/dashboard/summary", adminHandler.DashboardSummary)

	adminOrders := admin.Group("/orders")
	adminOrders.Get("/", adminOrderHandler.ListOrders)
	adminOrders.Get("/:id", adminOrderHandler.GetOrder)
	adminOrders.Patch("/:id/status", adminOrderHandler.UpdateStatus)

	adminProducts := admin.Group("/products")
	adminProducts.Get("/", adminProductHandler.ListProducts)
	adminProducts.Post("/", adminProductHandler.CreateProduct)
	adminProducts.Put("/:id", adminProductHandler.UpdateProduct)
	adminProducts.Delete("/:id", adminProductHandler.DeleteProduct)

	adminCoupons := admin.Group("/coupons")
	adminCoupons.Get("/", adminCouponHandler.ListCoupons)
	adminCoupons.Post("/", adminCouponHandler.CreateCoupon)
	adminCoupons.Put("/:id", adminCouponHandler.UpdateCoupon)
	adminCoupons.Delete("/:id", adminCouponHandler.DeleteCoupon)
}
