package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equiptrack/internal/domain/auth"
	"equiptrack/internal/pkg/response"
)

// RequireCapability ensures that one of the caller's roles grants capability
func RequireCapability(capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := auth.CallerFrom(c)
		if !ok {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if !auth.Can(caller, capability) {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
