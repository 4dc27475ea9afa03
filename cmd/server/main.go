package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tyabase/FreshDeliverySystem/config"
	"github.com/tyabase/FreshDeliverySystem/internal/handler"
	"github.com/tyabase/FreshDeliverySystem/internal/middleware"
	"github.com/tyabase/FreshDeliverySystem/internal/store"
	"github.com/tyabase/FreshDeliverySystem/internal/utils"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()
	logger := config.GetLogger()

	utils.ConfigureJWT(config.AppConfig.Server.JWTSecret, config.AppConfig.Server.JWTExpirationHours)

	// 2. Build the Store
	st := store.New(logger)

	if err := st.EnsureAdmin(config.AppConfig.Defaults.AdminUsername, config.AppConfig.Defaults.AdminPassword); err != nil {
		logger.Fatalf("Failed to seed admin user: %v", err)
	}
	if config.AppConfig.Defaults.SeedDemoData {
		if err := st.SeedDemoData(); err != nil {
			logger.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// 3. Initialize Router
	if config.AppConfig.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	// 4. Setup Routes
	authHandler := &handler.AuthHandler{Store: st}
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	userRoutes := r.Group("/api/v1/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	inventoryHandler := &handler.InventoryHandler{Store: st}

	// Catalog reads for any authenticated role
	r.GET("/api/v1/products", middleware.AuthMiddleware(), inventoryHandler.ListProducts)
	r.GET("/api/v1/products/:id", middleware.AuthMiddleware(), inventoryHandler.GetProduct)

	adminHandler := &handler.AdminHandler{Store: st}
	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware("admin"))
	{
		adminRoutes.POST("/products", inventoryHandler.CreateProduct)
		adminRoutes.PUT("/products/:id", inventoryHandler.UpdateProduct)
		adminRoutes.DELETE("/products/:id", inventoryHandler.DeleteProduct)
		adminRoutes.PUT("/products/:id/stock", inventoryHandler.AdjustStock)
		adminRoutes.POST("/products/stock/batch", inventoryHandler.BatchAdjustStock)
		adminRoutes.GET("/products/low-stock", inventoryHandler.LowStockAlerts)
		adminRoutes.GET("/products/out-of-stock", inventoryHandler.OutOfStock)
		adminRoutes.GET("/stock-movements", inventoryHandler.StockMovements)

		adminRoutes.POST("/users", adminHandler.CreateUser)
		adminRoutes.GET("/users", adminHandler.ListUsers)
		adminRoutes.PUT("/users/:id", adminHandler.UpdateUser)
		adminRoutes.DELETE("/users/:id", adminHandler.DeleteUser)
		adminRoutes.PUT("/users/:id/password", adminHandler.ResetUserPassword)

		adminRoutes.GET("/communities", adminHandler.ListCommunities)
		adminRoutes.POST("/communities", adminHandler.CreateCommunity)
		adminRoutes.PUT("/communities/:id", adminHandler.UpdateCommunity)
		adminRoutes.DELETE("/communities/:id", adminHandler.DeleteCommunity)

		adminRoutes.GET("/orders", adminHandler.ListOrders)
		adminRoutes.GET("/orders/:id", adminHandler.GetOrder)
		adminRoutes.GET("/orders/:id/history", adminHandler.GetOrderHistory)
		adminRoutes.PUT("/orders/status/batch", adminHandler.BatchUpdateOrderStatus)
		adminRoutes.GET("/dashboard", adminHandler.GetDashboardStats)
	}

	shopHandler := &handler.ShopHandler{Store: st}
	shopRoutes := r.Group("/api/v1/shop")
	shopRoutes.Use(middleware.AuthMiddleware("customer"))
	{
		shopRoutes.POST("/orders", shopHandler.SubmitOrder)
		shopRoutes.GET("/orders", shopHandler.MyOrders)
		shopRoutes.GET("/orders/:id", shopHandler.GetOrder)
		shopRoutes.PUT("/orders/:id/cancel", shopHandler.CancelOrder)
	}

	deliveryHandler := &handler.DeliveryHandler{Store: st}
	deliveryRoutes := r.Group("/api/v1/delivery")
	deliveryRoutes.Use(middleware.AuthMiddleware("delivery"))
	{
		deliveryRoutes.GET("/orders", deliveryHandler.ListOrders)
		deliveryRoutes.GET("/orders/cancelled", deliveryHandler.CancelledOrders)
		deliveryRoutes.PUT("/orders/:id/accept", deliveryHandler.AcceptOrder)
		deliveryRoutes.PUT("/orders/:id/start", deliveryHandler.StartDelivery)
		deliveryRoutes.PUT("/orders/:id/complete", deliveryHandler.CompleteDelivery)
		deliveryRoutes.PUT("/orders/:id/confirm-cancel", deliveryHandler.ConfirmCancel)
	}

	publicHandler := &handler.PublicHandler{}
	publicRoutes := r.Group("/api/v1/public")
	{
		publicRoutes.GET("/site-info", publicHandler.GetSiteInfo)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 5. Start Server
	port := config.AppConfig.Server.Port
	logger.Infof("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("Failed to run server: %v", err)
	}
}
