package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"listing/internal/utils"
)

// CORS allows the listing UI origins. The API is read-only, so only GET,
// POST (query bodies) and OPTIONS are exposed.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept", "Origin", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		err := cfg.Validate()
		if err == nil {
			return cors.New(cfg)
		}
		utils.LogWarn("", "http", "cors", "invalid allowed origins, allowing all without credentials", zap.Error(err))
	}
	cfg.AllowOrigins = nil
	cfg.AllowAllOrigins = true
	cfg.AllowCredentials = false
	return cors.New(cfg)
}
