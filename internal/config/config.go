// internal/config/config.go
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the store API
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	Security SecurityConfig
	External ExternalConfig
	Upload   UploadConfig
	Catalog  CatalogConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	BaseURL     string

	// Printed on invoices and shipping labels
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CompanyWebsite string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	LogQueries   bool
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// MongoConfig contains the activity log store. An empty URI disables it.
type MongoConfig struct {
	URI                string
	Database           string
	ActivityCollection string
	ConnectTimeout     time.Duration
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
	CookieName        string
	CookieSecure      bool
	CookieDomain      string
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	RateLimitBurst     int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
	AdminEmail         string
	AdminPassword      string
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	Razorpay RazorpayConfig
	Email    EmailConfig
	Storage  StorageConfig
}

// RazorpayConfig contains payment gateway configuration
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Currency  string
	Timeout   time.Duration
}

// EmailConfig contains email service configuration
type EmailConfig struct {
	Enabled      bool
	Provider     string
	APIKey       string
	FromEmail    string
	FromName     string
	ReplyTo      string
	BaseURL      string
	TemplateDir  string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
}

// StorageConfig contains file storage configuration
type StorageConfig struct {
	Provider    string
	LocalPath   string
	PublicPath  string
	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	CDNBaseURL  string
}

// UploadConfig contains file upload configuration
type UploadConfig struct {
	MaxSize           int64
	AllowedExtensions []string
	ImageMaxWidth     int
	ImageMaxHeight    int
	ThumbnailWidth    int
	ThumbnailHeight   int
	JPEGQuality       int
}

// CatalogConfig contains storefront tuning
type CatalogConfig struct {
	LowStockThreshold int
	MaxAddresses      int
	SeedFile          string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:           envString("APP_NAME", "Fashion Store"),
			Version:        envString("APP_VERSION", "1.0.0"),
			Environment:    envString("APP_ENV", "development"),
			Debug:          envBool("APP_DEBUG", true),
			BaseURL:        envString("APP_BASE_URL", "http://localhost:5173"),
			CompanyName:    envString("COMPANY_NAME", "Fashion Store"),
			CompanyAddress: envString("COMPANY_ADDRESS", ""),
			CompanyPhone:   envString("COMPANY_PHONE", ""),
			CompanyEmail:   envString("COMPANY_EMAIL", "support@example.com"),
			CompanyWebsite: envString("COMPANY_WEBSITE", ""),
		},
		Server: ServerConfig{
			Port:           envString("APP_PORT", "8080"),
			ReadTimeout:    envDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   envDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    envDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: envDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
			MaxBodyBytes:   envInt64("SERVER_MAX_BODY_BYTES", 10<<20),
		},
		Database: DatabaseConfig{
			Host:         envString("DB_HOST", "localhost"),
			Port:         envString("DB_PORT", "5432"),
			Name:         envString("DB_NAME", "fashion_store"),
			User:         envString("DB_USER", "store_user"),
			Password:     envString("DB_PASSWORD", "store_password"),
			SSLMode:      envString("DB_SSL_MODE", "disable"),
			MaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  envDuration("DB_MAX_LIFETIME", 300*time.Second),
			LogQueries:   envBool("DB_LOG_QUERIES", false),
		},
		Redis: RedisConfig{
			Host:         envString("REDIS_HOST", "localhost"),
			Port:         envString("REDIS_PORT", "6379"),
			Password:     envString("REDIS_PASSWORD", ""),
			DB:           envInt("REDIS_DB", 0),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Mongo: MongoConfig{
			URI:                envString("MONGO_URI", ""),
			Database:           envString("MONGO_DATABASE", "fashion_store"),
			ActivityCollection: envString("MONGO_ACTIVITY_COLLECTION", "activity"),
			ConnectTimeout:     envDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			Secret:            envString("JWT_SECRET", "change-me-to-a-long-random-secret-value"),
			AccessTokenExpiry: envDuration("JWT_ACCESS_EXPIRE", 60*time.Minute),
			CookieName:        envString("AUTH_COOKIE_NAME", "token"),
			CookieSecure:      envBool("AUTH_COOKIE_SECURE", false),
			CookieDomain:      envString("AUTH_COOKIE_DOMAIN", ""),
		},
		Security: SecurityConfig{
			BcryptCost:         envInt("BCRYPT_COST", 12),
			RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 100),
			RateLimitBurst:     envInt("RATE_LIMIT_BURST", 50),
			CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
			CORSAllowedMethods: envList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: envList("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "Cache-Control", "Expires", "Pragma"}),
			TrustedProxies:     envList("TRUSTED_PROXIES", []string{}),
			AdminEmail:         envString("ADMIN_EMAIL", ""),
			AdminPassword:      envString("ADMIN_PASSWORD", ""),
		},
		External: ExternalConfig{
			Razorpay: RazorpayConfig{
				KeyID:     envString("RAZORPAY_KEY_ID", ""),
				KeySecret: envString("RAZORPAY_KEY_SECRET", ""),
				BaseURL:   envString("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
				Currency:  envString("RAZORPAY_CURRENCY", "INR"),
				Timeout:   envDuration("RAZORPAY_TIMEOUT", 30*time.Second),
			},
			Email: EmailConfig{
				Enabled:      envBool("EMAIL_ENABLED", true),
				Provider:     envString("EMAIL_PROVIDER", "smtp"),
				APIKey:       envString("EMAIL_API_KEY", ""),
				FromEmail:    envString("FROM_EMAIL", "noreply@example.com"),
				FromName:     envString("FROM_NAME", "Fashion Store"),
				ReplyTo:      envString("EMAIL_REPLY_TO", ""),
				BaseURL:      envString("EMAIL_BASE_URL", "http://localhost:5173"),
				TemplateDir:  envString("EMAIL_TEMPLATE_DIR", "./templates/emails"),
				SMTPHost:     envString("SMTP_HOST", ""),
				SMTPPort:     envInt("SMTP_PORT", 587),
				SMTPUsername: envString("SMTP_USERNAME", ""),
				SMTPPassword: envString("SMTP_PASSWORD", ""),
				SMTPUseTLS:   envBool("SMTP_USE_TLS", false),
			},
			Storage: StorageConfig{
				Provider:    envString("STORAGE_PROVIDER", "local"),
				LocalPath:   envString("STORAGE_LOCAL_PATH", "./uploads"),
				PublicPath:  envString("STORAGE_PUBLIC_PATH", "/uploads"),
				S3Bucket:    envString("S3_BUCKET", ""),
				S3Region:    envString("S3_REGION", "ap-south-1"),
				S3AccessKey: envString("S3_ACCESS_KEY", ""),
				S3SecretKey: envString("S3_SECRET_KEY", ""),
				S3Endpoint:  envString("S3_ENDPOINT", ""),
				CDNBaseURL:  envString("CDN_BASE_URL", ""),
			},
		},
		Upload: UploadConfig{
			MaxSize:           envInt64("UPLOAD_MAX_SIZE", 5<<20),
			AllowedExtensions: envList("UPLOAD_ALLOWED_EXTENSIONS", []string{"jpg", "jpeg", "png", "gif", "webp"}),
			ImageMaxWidth:     envInt("IMAGE_MAX_WIDTH", 1600),
			ImageMaxHeight:    envInt("IMAGE_MAX_HEIGHT", 1600),
			ThumbnailWidth:    envInt("THUMBNAIL_WIDTH", 300),
			ThumbnailHeight:   envInt("THUMBNAIL_HEIGHT", 0),
			JPEGQuality:       envInt("JPEG_QUALITY", 85),
		},
		Catalog: CatalogConfig{
			LowStockThreshold: envInt("LOW_STOCK_THRESHOLD", 5),
			MaxAddresses:      envInt("MAX_ADDRESSES_PER_USER", 3),
			SeedFile:          envString("CATALOG_SEED_FILE", ""),
		},
		Logging: LoggingConfig{
			Level:  envString("LOG_LEVEL", "debug"),
			Format: envString("LOG_FORMAT", "json"),
			File:   envString("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the store cannot start without
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	required := []struct{ name, value string }{
		{"APP_PORT", c.Server.Port},
		{"DB_HOST", c.Database.Host},
		{"DB_NAME", c.Database.Name},
		{"DB_USER", c.Database.User},
		{"REDIS_HOST", c.Redis.Host},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	switch c.External.Storage.Provider {
	case "local":
	case "s3":
		if c.External.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_PROVIDER=s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_PROVIDER: %s", c.External.Storage.Provider)
	}

	if c.IsProduction() && (c.External.Razorpay.KeyID == "" || c.External.Razorpay.KeySecret == "") {
		return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required in production")
	}

	return nil
}

// IsProduction switches gin to release mode and makes gateway keys mandatory
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN builds the libpq keyword/value connection string
func (c *Config) GetDatabaseDSN() string {
	db := c.Database
	return "host=" + db.Host + " port=" + db.Port + " user=" + db.User +
		" password=" + db.Password + " dbname=" + db.Name + " sslmode=" + db.SSLMode
}

func (c *Config) GetRedisAddr() string {
	return net.JoinHostPort(c.Redis.Host, c.Redis.Port)
}

// envOr reads key and converts it with parse, keeping fallback when the
// variable is unset or malformed
func envOr[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envString(key, fallback string) string {
	return envOr(key, fallback, func(s string) (string, error) { return s, nil })
}

func envInt(key string, fallback int) int {
	return envOr(key, fallback, strconv.Atoi)
}

func envInt64(key string, fallback int64) int64 {
	return envOr(key, fallback, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
}

func envBool(key string, fallback bool) bool {
	return envOr(key, fallback, strconv.ParseBool)
}

func envDuration(key string, fallback time.Duration) time.Duration {
	return envOr(key, fallback, time.ParseDuration)
}

// envList splits a comma separated variable, dropping blank entries
func envList(key string, fallback []string) []string {
	return envOr(key, fallback, func(s string) ([]string, error) {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	})
}
