package http

import (
	"github.com/svaldez/catalog-admin/internal/auth"
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
	"github.com/svaldez/catalog-admin/internal/tasks"
)

// RouterConfig carries every dependency the router needs, so NewRouter does
// not grow an unmanageable parameter list.
type RouterConfig struct {
	Database *database.Database
	Version  string

	// Repositories
	BrandRepo    *brands.Repository
	ProductRepo  *products.Repository
	CategoryRepo *categories.Repository
	ColorRepo    *colors.Repository
	BannerRepo   *banners.Repository
	OrderRepo    *orders.Repository
	UserRepo     *users.Repository
	SyncRuns     *syncruns.Repository

	// Sync engines keyed by entity kind ("brands", "products")
	SyncEngines map[string]SyncEngine

	// Cron scheduler, for the status and manual-trigger endpoints (optional)
	Scheduler SyncScheduler

	// Uploaded product images
	UploadsDir string

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Authentication (all optional; nil means auth mode "none")
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool
	AuthConfig     config.Auth

	// Demo mode rejects all mutating requests
	DemoMode bool
}
