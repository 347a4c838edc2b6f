package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shootflow-backend/internal/config"
	"shootflow-backend/internal/workflow"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
	EmailKey  = "email"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			c.Abort()
			return
		}

		// Some browser clients URL-encode the stored token.
		decodedToken, err := url.QueryUnescape(tokenString)
		if err == nil && decodedToken != tokenString {
			tokenString = decodedToken
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			if cfg.JWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil {
			var errorMsg string
			if strings.Contains(err.Error(), "signature is invalid") {
				errorMsg = "token signature is invalid"
			} else if strings.Contains(err.Error(), "token is expired") {
				errorMsg = "token has expired"
			} else {
				errorMsg = err.Error()
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "message": errorMsg})
			c.Abort()
			return
		}

		if !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id in token"})
			c.Abort()
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing role in token"})
			c.Abort()
			return
		}
		role, err := workflow.ParseRole(roleStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid role in token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, sub)
		c.Set(RoleKey, role)
		if email, ok := claims["email"].(string); ok {
			c.Set(EmailKey, email)
		}
		c.Next()
	}
}

// ViewerRole returns the authenticated role stored by AuthMiddleware.
func ViewerRole(c *gin.Context) workflow.Role {
	if v, exists := c.Get(RoleKey); exists {
		if role, ok := v.(workflow.Role); ok {
			return role
		}
	}
	return ""
}

// RequireRoles rejects requests whose authenticated role is not in the list.
func RequireRoles(roles ...workflow.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ViewerRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		c.Abort()
	}
}

// RequireAdmin is the admin/superadmin union guard.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(workflow.RoleAdmin, workflow.RoleSuperAdmin)
}

func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRoles(workflow.RoleSuperAdmin)
}
