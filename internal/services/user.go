package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/types"
)

type UpdateUserInput struct {
	Email *string `json:"email" binding:"omitempty,email"`
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Role  *string `json:"role" binding:"omitempty,oneof=SUBMITTER COMMITTEE ADMIN"`
}

type UserQuery struct {
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,oneof=SUBMITTER COMMITTEE ADMIN"`
}

// FindAllUsers lists users newest first with their submitted/owned use case
// counts, optionally filtered by role and name/email search.
func FindAllUsers(query *UserQuery) ([]types.UserDetail, int64, error) {
	normalizeQuery(&query.Page, &query.Limit, 10)

	filter := func(tx *gorm.DB) *gorm.DB {
		if query.Search != "" {
			pattern := "%" + strings.ToLower(query.Search) + "%"
			tx = tx.Where(db.DB.
				Where("LOWER(name) LIKE ?", pattern).
				Or("LOWER(email) LIKE ?", pattern))
		}
		if query.Role != "" {
			tx = tx.Where("role = ?", query.Role)
		}
		return tx
	}

	var total int64

	if err := db.DB.Model(&models.User{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("Failed to count users", err)
	}

	var users []models.User

	err := db.DB.Scopes(filter).
		Order("created_at DESC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&users).Error

	if err != nil {
		return nil, 0, apperr.Internal("Failed to list users", err)
	}

	details := make([]types.UserDetail, 0, len(users))

	for i := range users {
		detail, err := userDetail(&users[i])
		if err != nil {
			return nil, 0, err
		}
		details = append(details, *detail)
	}

	return details, total, nil
}

func FindUserByID(id uint) (*types.UserDetail, error) {
	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Failed to fetch user", err)
	}

	return userDetail(&user)
}

// UpdateUser applies a partial admin edit. An email change is re-checked
// for uniqueness against every other user before writing.
func UpdateUser(id uint, input UpdateUserInput) (*types.UserDetail, error) {
	if _, err := FindUserByID(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))

		var existing models.User
		err := db.DB.Where("email = ? AND id <> ?", email, id).First(&existing).Error
		if err == nil {
			return nil, apperr.Conflict("Email already in use")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal("Failed to check email uniqueness", err)
		}

		updates["email"] = email
	}

	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}

	if len(updates) > 0 {
		err := db.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("Email already in use")
			}
			return nil, apperr.Internal("Failed to update user", err)
		}
	}

	return FindUserByID(id)
}

// DeleteUser removes a user, their memberships, and their submitted use
// cases; use cases they merely reviewed are unassigned, not deleted.
// Self-deletion is blocked in the handler.
func DeleteUser(id uint) error {
	if _, err := FindUserByID(id); err != nil {
		return err
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&models.GroupMembership{}).Error; err != nil {
			return err
		}

		err := tx.Model(&models.UseCase{}).Where("owner_id = ?", id).
			Update("owner_id", nil).Error
		if err != nil {
			return err
		}

		var submitted []models.UseCase
		if err := tx.Select("id").Where("submitter_id = ?", id).Find(&submitted).Error; err != nil {
			return err
		}

		for _, useCase := range submitted {
			if err := tx.Where("use_case_id = ?", useCase.ID).Delete(&models.UseCaseTool{}).Error; err != nil {
				return err
			}
			if err := tx.Where("use_case_id = ?", useCase.ID).Delete(&models.UseCaseGroup{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Where("submitter_id = ?", id).Delete(&models.UseCase{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.User{}, id).Error
	})

	if err != nil {
		return apperr.Internal("Failed to delete user", err)
	}

	return nil
}

// FindOwnerCandidates returns every COMMITTEE and ADMIN user, for the
// reviewer-assignment dropdown.
func FindOwnerCandidates() ([]models.User, error) {
	var users []models.User

	err := db.DB.
		Where("role IN ?", []string{types.RoleCommittee, types.RoleAdmin}).
		Order("name ASC").
		Find(&users).Error

	if err != nil {
		return nil, apperr.Internal("Failed to list owner candidates", err)
	}

	return users, nil
}

func userDetail(user *models.User) (*types.UserDetail, error) {
	var submitted, owned int64

	err := db.DB.Model(&models.UseCase{}).Where("submitter_id = ?", user.ID).Count(&submitted).Error
	if err != nil {
		return nil, apperr.Internal("Failed to count submitted use cases", err)
	}

	err = db.DB.Model(&models.UseCase{}).Where("owner_id = ?", user.ID).Count(&owned).Error
	if err != nil {
		return nil, apperr.Internal("Failed to count owned use cases", err)
	}

	return &types.UserDetail{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Counts: types.UserCounts{
			SubmittedUseCases: submitted,
			OwnedUseCases:     owned,
		},
	}, nil
}
