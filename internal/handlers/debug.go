package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ssaandco/aicatalog/internal/middleware"
	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/utils"
)

var debugHeaderPrefixes = []string{
	"X-Auth",
	"X-User",
	"X-Email",
	"X-Forwarded",
	"X-Groups",
}

// DebugAuth echoes the resolved auth context and the identity headers the
// proxy forwarded. Registered outside production only.
func DebugAuth(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	forwarded := map[string]string{}

	for name, values := range c.Request.Header {
		for _, prefix := range debugHeaderPrefixes {
			if strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
				forwarded[name] = strings.Join(values, ",")
				break
			}
		}
	}

	response.OK(c, gin.H{
		"auth":    authCtx,
		"headers": forwarded,
		"resolved": gin.H{
			"email":  middleware.HeaderValue(c, middleware.EmailHeaders),
			"user":   middleware.HeaderValue(c, middleware.UserHeaders),
			"groups": middleware.HeaderValue(c, middleware.GroupsHeaders),
		},
	})
}
