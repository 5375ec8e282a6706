package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/hexadmin/pkg/utils"
)

const principalKey = "principal"

// Principal es el usuario autenticado de la petición.
type Principal struct {
	UserID   uuid.UUID
	Username string
	RoleID   int
}

// Authenticator valida un access token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

// RequireAuth exige "Authorization: Bearer <token>"; sin token válido responde 401.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			utils.SendUnauthorized(c, http.StatusUnauthorized)
			return
		}
		p, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.SendUnauthorized(c, http.StatusUnauthorized)
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// BearerToken extrae el token de la cabecera Authorization.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CurrentPrincipal devuelve el usuario que dejó RequireAuth.
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}
