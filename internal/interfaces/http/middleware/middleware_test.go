package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "store-test"},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: time.Hour,
			CookieName:        "token",
		},
	}
}

type memoryDenylist struct {
	revoked map[string]bool
	err     error
}

func (m *memoryDenylist) Revoke(_ context.Context, id string, _ time.Duration) error {
	m.revoked[id] = true
	return nil
}

func (m *memoryDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	return m.revoked[id], m.err
}

func setup(t *testing.T) (*gin.Engine, *auth.JWTManager, *memoryDenylist) {
	t.Helper()
	cfg := testConfig()
	tokens := auth.NewJWTManager(cfg)
	denylist := &memoryDenylist{revoked: map[string]bool{}}
	authn := NewAuthenticator(tokens, denylist, cfg.JWT.CookieName)

	router := gin.New()
	router.GET("/me", authn.AuthMiddleware(), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	router.GET("/admin", authn.AuthMiddleware(), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/maybe", authn.OptionalAuthMiddleware(), func(c *gin.Context) {
		_, ok := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	return router, tokens, denylist
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("cookie token is accepted", func(t *testing.T) {
		router, tokens, _ := setup(t)
		token, err := tokens.GenerateToken(7, "a@example.com", "Asha", auth.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":7}`, rec.Body.String())
	})

	t.Run("bearer token is accepted", func(t *testing.T) {
		router, tokens, _ := setup(t)
		token, err := tokens.GenerateToken(7, "a@example.com", "Asha", auth.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token is unauthorised", func(t *testing.T) {
		router, _, _ := setup(t)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Unauthorised user!"}`, rec.Body.String())
	})

	t.Run("revoked token is unauthorised", func(t *testing.T) {
		router, tokens, denylist := setup(t)
		token, err := tokens.GenerateToken(7, "a@example.com", "Asha", auth.RoleUser)
		require.NoError(t, err)
		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		denylist.revoked[claims.ID] = true

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("denylist outage does not lock users out", func(t *testing.T) {
		router, tokens, denylist := setup(t)
		denylist.err = errors.New("connection refused")
		token, err := tokens.GenerateToken(7, "a@example.com", "Asha", auth.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminMiddleware(t *testing.T) {
	router, tokens, _ := setup(t)

	for _, tc := range []struct {
		role string
		want int
	}{
		{auth.RoleUser, http.StatusForbidden},
		{auth.RoleAdmin, http.StatusNoContent},
	} {
		t.Run(tc.role, func(t *testing.T) {
			token, err := tokens.GenerateToken(1, "x@example.com", "X", tc.role)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.AddCookie(&http.Cookie{Name: "token", Value: token})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	router, _, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
}

type fakeCounter struct {
	hits map[string]int64
	err  error
}

func (f *fakeCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.hits[key]++
	return f.hits[key], nil
}

func rateLimitedRouter(limiter *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(limiter.RateLimit())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestRateLimit(t *testing.T) {
	t.Run("shared counter rejects over the limit", func(t *testing.T) {
		counter := &fakeCounter{hits: map[string]int64{}}
		router := rateLimitedRouter(NewRateLimiter(counter, 2, 2))

		var codes []int
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("falls back to local buckets when the counter fails", func(t *testing.T) {
		counter := &fakeCounter{err: errors.New("redis down")}
		router := rateLimitedRouter(NewRateLimiter(counter, 1, 1))

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		assert.Equal(t, rec.Header().Get("X-Request-ID"), rec.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Body.String())
	})
}

func TestCORS(t *testing.T) {
	cfg := testConfig()
	cfg.Security.CORSAllowedOrigins = []string{"http://localhost:5173"}
	cfg.Security.CORSAllowedMethods = []string{"GET", "POST"}
	cfg.Security.CORSAllowedHeaders = []string{"Content-Type"}

	router := gin.New()
	router.Use(CORS(cfg))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
