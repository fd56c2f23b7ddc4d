// Package http wires the admin API: catalog CRUD, vendor sync, the
// reconciliation reports, uploads and operator management.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/svaldez/catalog-admin/internal/auth"
	"github.com/svaldez/catalog-admin/internal/demo"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	demoMiddleware := demo.NewMiddleware(cfg.DemoMode)
	router.Use(demoMiddleware.Handler())

	// CSRF must run before session so session context is layered on top of
	// the CSRF-wrapped request.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthService))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Set(auth.ContextKeyAuthType, auth.AuthTypeNone)
			c.Next()
		})
	}

	// Uploaded product images are served back to the storefront
	if cfg.UploadsDir != "" {
		router.Static("/uploads", cfg.UploadsDir)
	}

	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	syncController := NewSyncController(cfg.SyncEngines, cfg.SyncRuns, cfg.Scheduler)
	router.GET("/api/sync/runs", syncController.ListRuns)
	router.GET("/api/sync/status", syncController.SchedulerStatus)
	router.POST("/api/sync/run", syncController.TriggerSync)

	if cfg.BrandRepo != nil {
		brandsController := NewBrandsController(cfg.BrandRepo)
		router.GET("/api/brands", brandsController.GetAll)
		router.POST("/api/brands", brandsController.Create)
		router.GET("/api/brands/:id", brandsController.GetByID)
		router.PUT("/api/brands/:id", brandsController.Update)
		router.DELETE("/api/brands/:id", brandsController.Delete)
		router.POST("/api/brands/sync", syncController.Sync("brands"))
		router.GET("/api/brands/report", syncController.Report("brands"))
	}

	if cfg.ProductRepo != nil {
		productsController := NewProductsController(cfg.ProductRepo, cfg.CategoryRepo, cfg.ColorRepo)
		router.GET("/api/products", productsController.GetAll)
		router.POST("/api/products", productsController.Create)
		router.GET("/api/products/:id", productsController.GetByID)
		router.PUT("/api/products/:id", productsController.Update)
		router.DELETE("/api/products/:id", productsController.Delete)
		router.POST("/api/products/sync", syncController.Sync("products"))
		router.GET("/api/products/report", syncController.Report("products"))

		uploadController := NewUploadController(cfg.ProductRepo, cfg.UploadsDir)
		router.POST("/api/upload", uploadController.Upload)
	}

	if cfg.CategoryRepo != nil {
		categoriesController := NewCategoriesController(cfg.CategoryRepo)
		router.GET("/api/categories", categoriesController.GetAll)
		router.POST("/api/categories", categoriesController.Create)
		router.PUT("/api/categories/:id", categoriesController.Update)
		router.DELETE("/api/categories/:id", categoriesController.Delete)
	}

	if cfg.ColorRepo != nil {
		colorsController := NewColorsController(cfg.ColorRepo)
		router.GET("/api/colors", colorsController.GetAll)
		router.POST("/api/colors", colorsController.Create)
		router.PUT("/api/colors/:id", colorsController.Update)
		router.DELETE("/api/colors/:id", colorsController.Delete)
	}

	if cfg.BannerRepo != nil {
		bannersController := NewBannersController(cfg.BannerRepo)
		router.GET("/api/banners", bannersController.GetAll)
		router.POST("/api/banners", bannersController.Create)
		router.PUT("/api/banners/:id", bannersController.Update)
		router.DELETE("/api/banners/:id", bannersController.Delete)
	}

	if cfg.OrderRepo != nil {
		ordersController := NewOrdersController(cfg.OrderRepo)
		router.GET("/api/orders", ordersController.GetAll)
		router.POST("/api/orders", ordersController.Create)
		router.GET("/api/orders/:id", ordersController.GetByID)
		router.PATCH("/api/orders/:id/status", ordersController.UpdateStatus)
	}

	if cfg.UserRepo != nil && cfg.AuthService != nil {
		usersController := NewUsersController(cfg.UserRepo, cfg.AuthService)
		userRoutes := router.Group("/api/users")
		if cfg.AuthMiddleware != nil {
			userRoutes.Use(cfg.AuthMiddleware.RequireAdmin())
		}
		userRoutes.GET("", usersController.GetAll)
		userRoutes.POST("", usersController.Create)
		userRoutes.DELETE("/:id", usersController.Delete)
		userRoutes.POST("/:id/token", usersController.GenerateToken)
	}

	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		router.POST("/api/tasks/sync/:kind", tasksController.RunSync)
		router.GET("/api/tasks/:id", tasksController.GetStatus)
	}

	return router
}
