package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ScholarStream/scholarship-service/internal/auth"
	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
)

// CookieAuthMiddleware authenticates requests from the session cookie and
// authorizes them against roles stored in the database.
type CookieAuthMiddleware struct {
	tokens   *auth.TokenManager
	userRepo repositories.UserRepository
}

func NewCookieAuthMiddleware(tokens *auth.TokenManager, userRepo repositories.UserRepository) *CookieAuthMiddleware {
	return &CookieAuthMiddleware{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// AuthMiddleware verifies the session cookie and puts the caller's identity
// in the request context. Missing or invalid tokens short-circuit with 401.
func (am *CookieAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(auth.CookieName)
		if err != nil || tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "missing session token",
			})
			c.Abort()
			return
		}

		claims, err := am.tokens.Parse(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("invalid token: %v", err),
			})
			c.Abort()
			return
		}

		c.Set("user_email", claims.Email)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRoleMiddleware checks the caller's role against the allowed set.
// The role comes from a fresh database lookup on every request, never from
// the token, so a demotion takes effect even on sessions issued before it.
func (am *CookieAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")
		if email == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "user identity not found in context",
			})
			c.Abort()
			return
		}

		user, err := am.userRepo.GetByEmail(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "could not resolve user role",
			})
			c.Abort()
			return
		}

		for _, required := range requiredRoles {
			if user.Role == required {
				c.Set("user_role", user.Role)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
		})
		c.Abort()
	}
}

// RequireOwnerMiddleware checks that the email path parameter matches the
// authenticated caller. Ownership is exact email equality.
func (am *CookieAuthMiddleware) RequireOwnerMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")
		target := strings.ToLower(c.Param(param))
		if email == "" || email != target {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "you can only access your own resources",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
