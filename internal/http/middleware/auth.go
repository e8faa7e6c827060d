package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
)

const callerKey = "caller"

// TokenParser turns a bearer token into the authenticated caller.
type TokenParser interface {
	Parse(token string) (domain.RequestContext, error)
}

// Auth requires a valid bearer token. Browsers cannot set headers on a
// WebSocket handshake, so a ?token= query parameter is accepted as well.
func Auth(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = strings.TrimSpace(c.Query("token"))
		}
		if token == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "Token de acesso ausente.")
			return
		}
		caller, err := p.Parse(token)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "Sessão inválida ou expirada.")
			return
		}
		c.Set(callerKey, caller)
		c.Set("userRole", string(caller.Role))
		c.Next()
	}
}

// Caller returns the authenticated user set by Auth.
func Caller(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}

// SetCaller is used by tests and internal tooling.
func SetCaller(c *gin.Context, rc domain.RequestContext) {
	c.Set(callerKey, rc)
	c.Set("userRole", string(rc.Role))
}

func bearerToken(h string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
