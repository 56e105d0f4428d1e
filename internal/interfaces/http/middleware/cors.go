// internal/interfaces/http/middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/your-org/fashion-store/internal/config"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
// Credentials are allowed because the session travels in a cookie.
func CORS(cfg *config.Config) gin.HandlerFunc {
	handler := cors.New(cors.Options{
		AllowedOrigins:       cfg.Security.CORSAllowedOrigins,
		AllowedMethods:       cfg.Security.CORSAllowedMethods,
		AllowedHeaders:       cfg.Security.CORSAllowedHeaders,
		ExposedHeaders:       []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials:     true,
		MaxAge:               86400,
		OptionsSuccessStatus: http.StatusNoContent,
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
