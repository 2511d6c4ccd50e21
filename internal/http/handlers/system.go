package handlers

import (
	"net/http"
	"sync"
	"time"

	"listing/internal/http/middleware"
	"listing/internal/query"
	"listing/internal/services"
	"listing/internal/store"

	"github.com/gin-gonic/gin"
)

// Handler serves the listing API over one loaded store.
type Handler struct {
	Store       *store.Store
	Limits      query.Limits
	ProfileURL  string
	ExportTitle string
	FontPath    string

	routerMu sync.RWMutex
	router   *gin.Engine
}

// SetRouter stores the active gin engine for later inspection (/api/routes).
func (h *Handler) SetRouter(r *gin.Engine) {
	h.routerMu.Lock()
	defer h.routerMu.Unlock()
	h.router = r
}

func (h *Handler) listing(c *gin.Context) services.ListingService {
	return services.ListingService{
		Store:      h.Store,
		Limits:     h.Limits,
		ProfileURL: h.ProfileURL,
		RequestID:  middleware.GetRequestID(c),
	}
}

func (h *Handler) Health(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "dataset not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"records":   h.Store.Len(),
		"source":    h.Store.Source(),
		"loaded_at": h.Store.LoadedAt().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) Routes(c *gin.Context) {
	h.routerMu.RLock()
	r := h.router
	h.routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
