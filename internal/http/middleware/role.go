package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
)

// RequireRoles lets through only callers whose role is in allowed. It must
// run after Auth.
//
//	r.PUT("/trips/:id/status", RequireRoles(domain.RoleManager, domain.RoleAdmin), handler)
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[strings.ToLower(string(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "Usuário não autenticado.")
			return
		}
		if _, ok := set[strings.ToLower(strings.TrimSpace(role))]; !ok {
			abortJSON(c, http.StatusForbidden, "forbidden", "Você não tem permissão para esta ação.")
			return
		}
		c.Next()
	}
}
