package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"laundryhub/internal/pkg/response"
)

// StaffOnly rejects callers without a staff profile. Superusers pass
// through because is_manager is set for them at login.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("profile") != "staff" && !c.GetBool("is_manager") {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ManagerOnly requires the manager capability.
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_manager") {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Manager access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CustomerOnly requires a customer profile.
func CustomerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("profile") != "customer" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Customer access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
