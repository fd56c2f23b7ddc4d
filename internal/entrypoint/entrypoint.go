// Package entrypoint wires configuration, storage, sync engines and the HTTP
// server together and owns the process lifecycle.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/svaldez/catalog-admin/internal/audit"
	"github.com/svaldez/catalog-admin/internal/auth"
	"github.com/svaldez/catalog-admin/internal/catalogsync"
	"github.com/svaldez/catalog-admin/internal/config"
	"github.com/svaldez/catalog-admin/internal/database"
	"github.com/svaldez/catalog-admin/internal/database/banners"
	"github.com/svaldez/catalog-admin/internal/database/brands"
	"github.com/svaldez/catalog-admin/internal/database/categories"
	"github.com/svaldez/catalog-admin/internal/database/colors"
	"github.com/svaldez/catalog-admin/internal/database/orders"
	"github.com/svaldez/catalog-admin/internal/database/products"
	"github.com/svaldez/catalog-admin/internal/database/syncruns"
	"github.com/svaldez/catalog-admin/internal/database/users"
	http_controllers "github.com/svaldez/catalog-admin/internal/http"
	"github.com/svaldez/catalog-admin/internal/scheduler"
	"github.com/svaldez/catalog-admin/internal/tasks"
	"github.com/svaldez/catalog-admin/internal/vendorapi"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then drains it.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutting down, waiting up to %v", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background workers before the listener so in-flight syncs finish
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server shutdown:", err)
	}

	log.Println("Server exiting")
}

// BuildSyncEngines constructs the per-kind sync engines over the shared
// vendor API client.
func BuildSyncEngines(cfg config.Vendor, brandRepo *brands.Repository, productRepo *products.Repository) map[string]*catalogsync.Engine {
	client := vendorapi.NewClientWithTimeout(cfg.Timeout)

	brandEndpoint := vendorapi.EndpointConfig{
		URL:         cfg.BrandsURL,
		Username:    cfg.Username,
		Password:    cfg.Password,
		ResultField: "result",
	}
	productEndpoint := vendorapi.EndpointConfig{
		URL:         cfg.ProductsURL,
		Username:    cfg.Username,
		Password:    cfg.Password,
		ResultField: "detProducto",
	}

	var brandFetcher catalogsync.Fetcher = catalogsync.NewVendorFetcher(client, brandEndpoint)
	var productFetcher catalogsync.Fetcher = catalogsync.NewVendorFetcher(client, productEndpoint)
	if cfg.AuditDir != "" {
		auditor := audit.NewAuditor(cfg.AuditDir)
		brandFetcher = catalogsync.NewArchivingFetcher(brandFetcher, "brands", auditor)
		productFetcher = catalogsync.NewArchivingFetcher(productFetcher, "products", auditor)
	}

	return map[string]*catalogsync.Engine{
		"brands": catalogsync.New(
			brandRepo,
			brandFetcher,
			catalogsync.Mapping{Kind: "brands", IDField: "idmarca", NameField: "denominacion"},
		),
		"products": catalogsync.New(
			productRepo,
			productFetcher,
			catalogsync.Mapping{Kind: "products", IDField: "idproducto", NameField: "nombreproducto", GradeCompleteness: true},
		),
	}
}

// Run builds the full application and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting catalog-admin v%s", version)

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create uploads directory %s: %v", cfg.Uploads.Dir, err)
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	brandRepo := brands.NewRepository(db.DB)
	productRepo := products.NewRepository(db.DB)
	categoryRepo := categories.NewRepository(db.DB)
	colorRepo := colors.NewRepository(db.DB)
	bannerRepo := banners.NewRepository(db.DB)
	orderRepo := orders.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	runRepo := syncruns.NewRepository(db.DB)

	engines := BuildSyncEngines(cfg.Vendor, brandRepo, productRepo)

	if cfg.Demo.Enabled {
		log.Println("Demo mode enabled: all mutating requests will be rejected")
	}

	if cfg.Vendor.BrandsURL == "" || cfg.Vendor.ProductsURL == "" {
		log.Printf("WARNING: vendor API endpoints are not configured; sync requests will fail until VENDOR_API_BRANDS_URL and VENDOR_API_PRODUCTS_URL are set")
	}

	// Task queue for background syncs
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		// The queue always lives in its own SQLite file, even when the main
		// store is postgres.
		taskDBBase := cfg.Database.Path
		if taskDBBase == "" {
			taskDBBase = config.DefaultDatabasePath
		}
		taskClient, err = tasks.NewClient(taskDBBase, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewSyncCatalogQueue(engines, runRepo, taskCfg))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Periodic vendor sync
	syncScheduler := scheduler.NewVendorSyncScheduler(engines, runRepo, cfg.VendorSync)
	if err := syncScheduler.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start vendor sync scheduler: %v", err)
	}

	// Authentication
	var authService *auth.Service
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var csrfSecret []byte

	authService = auth.NewService(db.DB, cfg.Auth)

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)

		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist sessions across restarts)")
		}

		hasUsers, _ := authService.HasUsers()
		if !hasUsers {
			log.Printf("No users found. Run 'catalog-admin create-user' to create an operator account.")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	syncEngines := make(map[string]http_controllers.SyncEngine, len(engines))
	for kind, engine := range engines {
		syncEngines[kind] = engine
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Version:        version,
		BrandRepo:      brandRepo,
		ProductRepo:    productRepo,
		CategoryRepo:   categoryRepo,
		ColorRepo:      colorRepo,
		BannerRepo:     bannerRepo,
		OrderRepo:      orderRepo,
		UserRepo:       userRepo,
		SyncRuns:       runRepo,
		SyncEngines:    syncEngines,
		Scheduler:      syncScheduler,
		UploadsDir:     cfg.Uploads.Dir,
		TaskClient:     taskClient,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		AuthConfig:     cfg.Auth,
		DemoMode:       cfg.Demo.Enabled,
	})

	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
