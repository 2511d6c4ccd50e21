package api

import (
	stdhttp "net/http"

	intconfig "listing/internal/config"
	h "listing/internal/http/handlers"
	"listing/internal/http/middleware"
	"listing/internal/query"
	"listing/internal/store"
	"listing/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env, st *store.Store) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.RateLimiter(env.RateLimitRPS, env.RateLimitBurst),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.LogWarn("", "http", "trusted_proxies", "failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	handler := &h.Handler{
		Store: st,
		Limits: query.Limits{
			DefaultPageSize: env.DefaultPageSize,
			MaxPageSize:     env.MaxPageSize,
		},
		ProfileURL: env.ProfileURLTemplate,
		FontPath:   env.PDFFontPath,
	}
	handler.SetRouter(r)

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/routes", handler.Routes)

		records := api.Group("/records")
		records.GET("", handler.ListRecords)
		records.POST("/query", handler.QueryRecords)
		records.GET("/export.pdf", handler.ExportRecords)
		records.GET("/:id", handler.GetRecord)

		facets := api.Group("/facets")
		facets.GET("", handler.ListFacets)
		facets.GET("/:field", handler.GetFacet)
	}

	return r
}
