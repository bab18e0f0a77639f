package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/response"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	ContextAdminID    = "admin_id"
	ContextAdminEmail = "admin_email"
	ContextAdminRole  = "admin_role"
)

// bearerToken returns the token from "Authorization: Bearer <token>",
// falling back to the auth cookie
func bearerToken(c *gin.Context, cookieName string) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", false
		}
		return parts[1], true
	}
	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token, true
		}
	}
	return "", false
}

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c, cookieName)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminEmail, claims.Email)
		c.Set(ContextAdminRole, claims.Role)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextAdminRole)
		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}

// GetAdminID returns the authenticated admin, or uuid.Nil
func GetAdminID(c *gin.Context) uuid.UUID {
	v, exists := c.Get(ContextAdminID)
	if !exists {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}
