package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lawlink/lawlink-api/internal/handler"
	authHandler "github.com/lawlink/lawlink-api/internal/handler/auth"
	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/httputil"
)

// TokenValidator verifies a raw token string and returns its claims.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Authenticate requires a valid session token, from the session cookie or a
// Bearer header. The response is the same 401 regardless of why the token
// was rejected.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthenticated(c)
			return
		}

		claims, err := m.validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(handler.ContextClaims, claims)
		c.Next()
	}
}

// OptionalAuth decodes the token when present but never rejects the request.
// Public endpoints use it so owners see their own inactive resources.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, err := m.validator.ValidateToken(c.Request.Context(), token); err == nil {
				c.Set(handler.ContextClaims, claims)
			}
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(authHandler.CookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, httputil.Response{
		Success: false,
		Error: &httputil.Error{
			Code:    errors.CodeUnauthenticated,
			Message: "authentication required",
		},
	})
	c.Abort()
}
