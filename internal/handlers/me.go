package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/types"
	"github.com/ssaandco/aicatalog/internal/utils"
)

// Me returns the current user with role flags and group memberships.
func Me(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var user models.User

	if err := db.DB.Preload("Memberships.Group").First(&user, authCtx.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.Error(c, apperr.Internal("Failed to fetch current user", err))
		return
	}

	groups := make([]types.GroupResponse, 0, len(user.Memberships))
	for i := range user.Memberships {
		groups = append(groups, toGroupResponse(&user.Memberships[i].Group))
	}

	response.OK(c, types.MeResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		IsAdmin:     authCtx.IsAdmin,
		IsCommittee: authCtx.IsCommittee,
		Groups:      groups,
	})
}
