package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/users"
	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/apperr"
)

const ctxKeyUser = "current_user"

// ContextUser is the request-scoped identity. Handlers pass its ID into
// services explicitly; services never reach for ambient state.
type ContextUser struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// TokenResolver maps a bearer token to a user. *users.Repo implements it.
type TokenResolver interface {
	GetByToken(ctx context.Context, token string) (users.User, error)
}

// RequireAuth resolves "Authorization: Bearer <token>" and aborts with 401
// when it is missing or unknown.
func RequireAuth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			Fail(c, apperr.UnauthorizedErr("Authentication required"))
			return
		}

		u, err := resolver.GetByToken(c.Request.Context(), token)
		if err != nil {
			Fail(c, apperr.UnauthorizedErr("Invalid or expired token"))
			return
		}

		c.Set(ctxKeyUser, ContextUser{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (ContextUser, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return ContextUser{}, false
	}
	u, ok := v.(ContextUser)
	return u, ok
}

// SetCurrentUser injects an identity directly, for handler tests.
func SetCurrentUser(c *gin.Context, u ContextUser) {
	c.Set(ctxKeyUser, u)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
