package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
)

// WSHandler is implemented by events.Hub.
type WSHandler interface {
	ServeWS(w http.ResponseWriter, r *http.Request, viewer domain.RequestContext)
}

// TripEvents streams trip events over a WebSocket (GET /api/ws/trips).
func TripEvents(hub WSHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := caller(c)
		if !ok {
			return
		}
		hub.ServeWS(c.Writer, c.Request, rc)
	}
}
