package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/utils"
)

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=100"`
}

type AddGroupMemberRequest struct {
	GroupID uint `json:"groupId" binding:"required"`
	UserID  uint `json:"userId" binding:"required"`
}

// ListGroups returns every group for admins and the caller's own
// memberships otherwise.
func ListGroups(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	query := db.DB.Model(&models.Group{}).Order("name ASC")

	if !authCtx.IsAdmin {
		memberOf := db.DB.Model(&models.GroupMembership{}).
			Select("group_id").
			Where("user_id = ?", authCtx.UserID)
		query = query.Where("id IN (?)", memberOf)
	}

	var groups []models.Group

	if err := query.Find(&groups).Error; err != nil {
		response.Error(c, apperr.Internal("Failed to list groups", err))
		return
	}

	response.OK(c, toGroupResponses(groups))
}

func CreateGroup(c *gin.Context) {
	var req CreateGroupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	group := models.Group{
		Name: req.Name,
		Slug: strings.ToLower(strings.TrimSpace(req.Slug)),
	}

	if err := db.DB.Create(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.BadRequest(c, "Group slug already exists")
			return
		}
		response.Error(c, apperr.Internal("Failed to create group", err))
		return
	}

	response.Created(c, toGroupResponse(&group))
}

func DeleteGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "groupId")
	if !ok {
		return
	}

	var group models.Group

	if err := db.DB.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Group not found")
			return
		}
		response.Error(c, apperr.Internal("Failed to fetch group", err))
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("group_id = ?", id).Delete(&models.GroupMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.UseCaseGroup{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&group).Error
	})

	if err != nil {
		response.Error(c, apperr.Internal("Failed to delete group", err))
		return
	}

	response.OK(c, gin.H{"message": "Group deleted successfully"})
}

func AddGroupMember(c *gin.Context) {
	var req AddGroupMemberRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	var user models.User

	if err := db.DB.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.Error(c, apperr.Internal("Failed to fetch user", err))
		return
	}

	var group models.Group

	if err := db.DB.First(&group, req.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Group not found")
			return
		}
		response.Error(c, apperr.Internal("Failed to fetch group", err))
		return
	}

	membership := models.GroupMembership{UserID: req.UserID, GroupID: req.GroupID}

	if err := db.DB.Create(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.BadRequest(c, "User is already a member of this group")
			return
		}
		response.Error(c, apperr.Internal("Failed to add group member", err))
		return
	}

	response.Created(c, gin.H{
		"id":    membership.ID,
		"user":  toUserSummary(&user),
		"group": toGroupResponse(&group),
	})
}

func RemoveGroupMember(c *gin.Context) {
	groupID, ok := parseIDParam(c, "groupId")
	if !ok {
		return
	}

	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var membership models.GroupMembership

	err := db.DB.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Membership not found")
			return
		}
		response.Error(c, apperr.Internal("Failed to fetch membership", err))
		return
	}

	if err := db.DB.Unscoped().Delete(&membership).Error; err != nil {
		response.Error(c, apperr.Internal("Failed to remove group member", err))
		return
	}

	response.OK(c, gin.H{"message": "User removed from group"})
}
