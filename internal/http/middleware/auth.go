package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamvtyagi/flashLearn/internal/http/response"
	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/services"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

const (
	userKey  = "currentUser"
	tokenKey = "currentToken"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log.With("middleware", "AuthMiddleware"),
		authService: authService,
	}
}

// RequireAuth resolves the request's token to a user or aborts with 401.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		user, err := am.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.FromAPIError(c, err)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth.
func CurrentUser(c *gin.Context) (*types.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*types.User)
	return user, ok
}

// CurrentToken returns the raw token the request authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	if cToken, err := c.Cookie("token"); err == nil && cToken != "" {
		return cToken
	}
	return c.Query("token")
}
