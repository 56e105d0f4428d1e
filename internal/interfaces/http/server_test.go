package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/interfaces/http/middleware"
	"github.com/your-org/fashion-store/internal/interfaces/http/routes"
	"github.com/your-org/fashion-store/internal/pkg/auth"
)

type checkFunc func(ctx context.Context) error

func (f checkFunc) Health(ctx context.Context) error { return f(ctx) }

func setup(t *testing.T, checks map[string]HealthChecker) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App:    config.AppConfig{Name: "store-test", Environment: "test"},
		Server: config.ServerConfig{Port: "0", RequestTimeout: time.Second, MaxBodyBytes: 1 << 20},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: time.Hour,
			CookieName:        "token",
		},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"http://localhost:5173"},
			CORSAllowedMethods: []string{"GET", "POST"},
		},
	}

	server, err := NewServer(cfg, Options{
		Handlers:      &routes.Handlers{},
		Authenticator: middleware.NewAuthenticator(auth.NewJWTManager(cfg), nil, cfg.JWT.CookieName),
		Checks:        checks,
	})
	require.NoError(t, err)
	return server.Handler()
}

func get(t *testing.T, h http.Handler, path string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestProbes(t *testing.T) {
	t.Run("health does not touch dependencies", func(t *testing.T) {
		h := setup(t, map[string]HealthChecker{
			"postgres": checkFunc(func(context.Context) error { return errors.New("down") }),
		})
		code, body := get(t, h, "/health")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("ready reports failing dependencies", func(t *testing.T) {
		h := setup(t, map[string]HealthChecker{
			"postgres": checkFunc(func(context.Context) error { return nil }),
			"redis":    checkFunc(func(context.Context) error { return errors.New("connection refused") }),
		})
		code, body := get(t, h, "/ready")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, map[string]interface{}{"postgres": "ok", "redis": "unavailable"}, body["checks"])
	})
}

func TestRoutes(t *testing.T) {
	h := setup(t, nil)

	t.Run("shop routes need a session", func(t *testing.T) {
		code, body := get(t, h, "/api/shop/cart/get")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("admin routes need a session", func(t *testing.T) {
		code, _ := get(t, h, "/api/admin/dashboard")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("unknown routes use the envelope", func(t *testing.T) {
		code, body := get(t, h, "/api/nowhere")
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Route not found", body["message"])
	})

	t.Run("responses carry a request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}
