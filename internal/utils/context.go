package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ssaandco/aicatalog/internal/types"
)

// GetAuthContext returns the resolved identity placed on the request by the
// auth middleware.
func GetAuthContext(c *gin.Context) (*types.AuthContext, error) {
	value, exists := c.Get(types.ContextAuthKey)

	if !exists {
		return nil, fmt.Errorf("request is not authenticated")
	}

	authCtx, ok := value.(*types.AuthContext)

	if !ok {
		return nil, fmt.Errorf("invalid auth context type")
	}

	return authCtx, nil
}

func GetCurrentUserID(c *gin.Context) (uint, error) {
	authCtx, err := GetAuthContext(c)

	if err != nil {
		return 0, err
	}

	return authCtx.UserID, nil
}
