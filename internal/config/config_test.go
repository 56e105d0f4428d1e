package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost", Name: "store", User: "store"},
		Redis:    RedisConfig{Host: "localhost"},
		JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		External: ExternalConfig{Storage: StorageConfig{Provider: "local"}},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	for _, tc := range []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "JWT_SECRET"},
		{"missing database host", func(c *Config) { c.Database.Host = "" }, "DB_HOST"},
		{"missing redis host", func(c *Config) { c.Redis.Host = "" }, "REDIS_HOST"},
		{"s3 without bucket", func(c *Config) { c.External.Storage.Provider = "s3" }, "S3_BUCKET"},
		{"unknown storage", func(c *Config) { c.External.Storage.Provider = "ftp" }, "STORAGE_PROVIDER"},
		{"production without razorpay keys", func(c *Config) { c.App.Environment = "production" }, "RAZORPAY"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_ACCESS_EXPIRE", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com, https://admin.example.com")
	t.Setenv("MAX_ADDRESSES_PER_USER", "5")
	t.Setenv("SMTP_USE_TLS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.Security.CORSAllowedOrigins)
	assert.Equal(t, 5, cfg.Catalog.MaxAddresses)
	assert.True(t, cfg.External.Email.SMTPUseTLS)
	assert.Equal(t, "token", cfg.JWT.CookieName)
}

func TestEnvHelpersFallBackOnBadValues(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_BOOL", "maybe")

	assert.Equal(t, 3, envInt("TEST_INT", 3))
	assert.Equal(t, time.Second, envDuration("TEST_DURATION", time.Second))
	assert.False(t, envBool("TEST_BOOL", false))
	assert.Equal(t, "fallback", envString("TEST_UNSET_KEY", "fallback"))
}

func TestDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Port = "5432"
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "disable"

	assert.Equal(t, "host=localhost port=5432 user=store password=secret dbname=store sslmode=disable", cfg.GetDatabaseDSN())
}

func TestEnvListDropsBlankEntries(t *testing.T) {
	t.Setenv("TEST_LIST", "jpg, ,png,")
	assert.Equal(t, []string{"jpg", "png"}, envList("TEST_LIST", nil))
	assert.Equal(t, []string{"gif"}, envList("TEST_LIST_UNSET", []string{"gif"}))
}
