package middleware

import (
	"errors"
	"net/http"
	"strings"

	"conjunto/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Roles recognized in the verified token. Token issuance happens upstream
// (the complex's identity service); this middleware only verifies.
const (
	RoleResident = "resident"
	RoleGuard    = "guard"
	RoleAdmin    = "admin"
)

// validateToken parses an HS256 token and returns the caller id and role.
func validateToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", "", errors.New("token does not contain a valid 'role' claim")
	}
	return sub, role, nil
}

// JWTAuthMiddleware verifies the bearer token and requires the caller to hold
// one of the allowed roles. The caller identity is exposed to handlers via
// "callerID" and "callerRole".
func JWTAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		callerID, role, err := validateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		allowed := len(allowedRoles) == 0
		for _, r := range allowedRoles {
			if role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied for role " + role})
			return
		}

		c.Set("callerID", callerID)
		c.Set("callerRole", role)
		c.Next()
	}
}
