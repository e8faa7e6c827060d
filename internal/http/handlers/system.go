package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (GET /api/system/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "Banco de dados não conectado.", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "Falha ao consultar o banco de dados.", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "driver": string(h.Dialect)})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "router_not_ready", "Roteador não inicializado.", nil)
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
