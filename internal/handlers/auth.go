package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/services"
	"github.com/ssaandco/aicatalog/internal/utils"
)

// Legacy direct register/login endpoints. Header-based identity is the
// primary flow; these cover deployments without the auth proxy.

func Register(c *gin.Context) {
	var input services.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	user, err := services.Register(input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}

func Login(c *gin.Context) {
	var input services.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	user, token, err := services.Login(input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
		"token": token,
	})
}

// AuthMe returns the caller's bare user record (no group expansion),
// mirroring the shape of the register response.
func AuthMe(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var user models.User

	if err := db.DB.First(&user, authCtx.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.Error(c, apperr.Internal("Failed to fetch user", err))
		return
	}

	response.OK(c, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}
