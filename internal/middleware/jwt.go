package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"equiptrack/internal/domain/auth"
	"equiptrack/internal/pkg/jwt"
	"equiptrack/internal/pkg/response"
)

// JWTAuth validates the bearer token and puts the caller on the context.
func JWTAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be Bearer <token>")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		auth.SetCaller(c, auth.CallerFromNames(claims.UserID, claims.Roles))
		c.Next()
	}
}
