package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskpad/taskpad/internal/model"
	"github.com/taskpad/taskpad/internal/pkg/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextIdentityKey = "identity"
)

// IdentityResolver turns a bearer token into a live identity. The auth
// service implements it; the indirection keeps the middleware testable
// without a database.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*model.Identity, error)
}

// Auth gates a route group on a bearer token. Clients historically send
// the raw token in the Authorization header, so a Bearer prefix is
// tolerated but not required.
func Auth(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromHeader(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "missing authorization")
			c.Abort()
			return
		}
		identity, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, identity.ID)
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

func TokenFromHeader(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
