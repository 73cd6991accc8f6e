package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rcalhoun/summit-backend/config"
	"github.com/rcalhoun/summit-backend/internal/app/controller"
	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/rcalhoun/summit-backend/internal/middleware"
)

type Router struct {
	authController    *controller.AuthController
	cartController    *controller.CartController
	catalogController *controller.CatalogController
	uploadController  *controller.UploadController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	cartController *controller.CartController,
	catalogController *controller.CatalogController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		cartController:    cartController,
		catalogController: catalogController,
		uploadController:  uploadController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Summit API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.ReplaceCart)
			cart.POST("/items", r.cartController.AddItems)
			cart.PUT("/items", r.cartController.SetItems)
			cart.DELETE("", r.cartController.DeleteCart)
			cart.POST("/merge", r.cartController.MergeCart)
		}

		visitorCarts := v1.Group("/visitor-carts")
		{
			visitorCarts.POST("", r.cartController.CreateVisitorCart)
			visitorCarts.GET("/:visitorId", r.cartController.GetVisitorCart)
			visitorCarts.POST("/:visitorId", r.cartController.ReplaceVisitorCart)
			visitorCarts.POST("/:visitorId/items", r.cartController.AddVisitorItems)
			visitorCarts.PUT("/:visitorId/items", r.cartController.SetVisitorItems)
			visitorCarts.DELETE("/:visitorId", r.cartController.DeleteVisitorCart)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.catalogController.ListProducts)
			products.GET("/:id", r.catalogController.GetProduct)
			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.catalogController.CreateProduct,
			)
		}

		variants := v1.Group("/variants")
		{
			variants.GET("/:id", r.catalogController.GetVariantForRole)
			variants.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleAdmin),
				r.catalogController.CreateVariant,
			)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(model.RoleAdmin))
		{
			uploads.POST("/presigned", r.uploadController.GetPresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
