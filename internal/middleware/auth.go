package middleware

import (
	"net/http"
	"strings"

	"staybook/internal/pkg/response"

	jwtsvc "staybook/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Identity is the request-scoped authenticated caller. A zero UserID means
// the request is anonymous.
type Identity struct {
	UserID int64
	Role   string
}

func (id Identity) Authenticated() bool { return id.UserID != 0 }
func (id Identity) IsStaff() bool       { return id.Role == "admin" }

// CallerIdentity reads the identity the auth middleware stored on the
// request context.
func CallerIdentity(c *gin.Context) Identity {
	return Identity{
		UserID: c.GetInt64("user_id"),
		Role:   c.GetString("role"),
	}
}

// Auth rejects requests without a valid bearer token and stores the
// caller's identity on the request context.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwt)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth stores the identity when a valid token is present and lets
// the request through anonymously otherwise. Used on endpoints whose
// result set depends on who is asking.
func OptionalAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, jwt); ok {
			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, jwt *jwtsvc.Service) (*jwtsvc.Claims, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		return nil, false
	}
	claims, err := jwt.ValidateToken(tokenStr)
	if err != nil {
		return nil, false
	}
	return claims, true
}
