package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeLocal AuthMode = "local" // Local user database with sessions
)

type (
	Config struct {
		HTTP
		Database
		Vendor
		VendorSync
		Uploads
		Tasks
		Auth
		Demo
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Driver string // "sqlite" (default) or "postgres"
		Path   string // sqlite file path
		DSN    string // postgres DSN, required when Driver == "postgres"
	}
	// Vendor holds the external catalog API settings. All three credential
	// fields are required but validated lazily when a sync is requested, not
	// at process start.
	Vendor struct {
		BrandsURL   string
		ProductsURL string
		Username    string
		Password    string
		Timeout     time.Duration
		AuditDir    string // When set, raw vendor payloads are archived here
	}
	VendorSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 */6 * * *" = every 6 hours
	}
	Uploads struct {
		Dir string // Directory product images are written to
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Auth struct {
		Mode            AuthMode
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
	}
	// Demo mode serves the catalog read-only; every mutating request is
	// rejected. Intended for public showcase deployments.
	Demo struct {
		Enabled bool
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("uploads_dir", "./uploads")

	// Vendor API defaults; credentials intentionally have no defaults
	v.SetDefault("vendor_api_brands_url", "")
	v.SetDefault("vendor_api_products_url", "")
	v.SetDefault("vendor_api_username", "")
	v.SetDefault("vendor_api_password", "")
	v.SetDefault("vendor_api_timeout", "30s")
	v.SetDefault("vendor_api_audit_dir", "")
	v.SetDefault("vendor_sync_enabled", false)
	v.SetDefault("vendor_sync_schedule", "0 */6 * * *") // Every 6 hours

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_session_secret", "") // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", true)

	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Driver: v.GetString("DATABASE_DRIVER"),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Vendor: Vendor{
			BrandsURL:   v.GetString("VENDOR_API_BRANDS_URL"),
			ProductsURL: v.GetString("VENDOR_API_PRODUCTS_URL"),
			Username:    v.GetString("VENDOR_API_USERNAME"),
			Password:    v.GetString("VENDOR_API_PASSWORD"),
			Timeout:     v.GetDuration("VENDOR_API_TIMEOUT"),
			AuditDir:    v.GetString("VENDOR_API_AUDIT_DIR"),
		},
		VendorSync: VendorSync{
			Enabled:  v.GetBool("VENDOR_SYNC_ENABLED"),
			Schedule: v.GetString("VENDOR_SYNC_SCHEDULE"),
		},
		Uploads: Uploads{
			Dir: v.GetString("UPLOADS_DIR"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Auth: Auth{
			Mode:            AuthMode(v.GetString("AUTH_MODE")),
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
