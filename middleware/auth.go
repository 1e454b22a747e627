package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/auth"
)

const identityKey = "identity"

// TokenParser validates access tokens.
type TokenParser interface {
	ParseAccess(token string) (*auth.Claims, error)
}

// Authenticate requires a valid access token in the Authorization header
// and attaches the caller's identity to the request.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, apperr.Unauthorized("Missing authorization token"))
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abort(c, apperr.Unauthorized("Invalid authorization header"))
			return
		}

		claims, err := tokens.ParseAccess(strings.TrimSpace(token))
		if err != nil {
			abort(c, apperr.Unauthorized("Invalid or expired token").Wrap(err))
			return
		}

		id := claims.Identity()
		c.Set(identityKey, id)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// Authorize allows the request through only when the caller's role holds
// the permission. It must run after Authenticate.
func Authorize(p Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			abort(c, apperr.Unauthorized("Missing authorization token"))
			return
		}
		if !Allowed(p, id.Role) {
			abort(c, apperr.Forbidden("You do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity set by Authenticate.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func abort(c *gin.Context, err *apperr.Error) {
	_ = c.Error(err)
	c.Abort()
}
