package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/utils"
)

// RequireAdmin allows only ADMIN callers past.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, err := utils.GetAuthContext(c)
		if err != nil {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		if !authCtx.IsAdmin {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireCommitteeOrAdmin allows COMMITTEE and ADMIN callers past.
func RequireCommitteeOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, err := utils.GetAuthContext(c)
		if err != nil {
			response.Unauthorized(c, "Unauthorized")
			c.Abort()
			return
		}

		if !authCtx.IsCommittee {
			response.Forbidden(c, "Committee or Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
