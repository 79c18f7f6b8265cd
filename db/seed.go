package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/types"
)

// SeedDemoData creates a minimal working data set: one user per role and a
// "general" group containing all of them. Idempotent; safe to run on every
// start when enabled.
func SeedDemoData(domain string) error {
	if domain == "" {
		domain = "example.com"
	}

	seedUsers := []struct {
		email string
		name  string
		role  string
	}{
		{"admin@" + domain, "System Administrator", types.RoleAdmin},
		{"committee@" + domain, "Committee Member", types.RoleCommittee},
		{"submitter@" + domain, "Regular User", types.RoleSubmitter},
	}

	var users []models.User

	for _, s := range seedUsers {
		name := s.name
		user := models.User{Email: s.email, Name: &name, Role: s.role}

		err := DB.Where("email = ?", s.email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := DB.Create(&user).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		users = append(users, user)
	}

	group := models.Group{Name: "General", Slug: "general"}

	err := DB.Where("slug = ?", group.Slug).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := DB.Create(&group).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	for _, user := range users {
		membership := models.GroupMembership{UserID: user.ID, GroupID: group.ID}

		err := DB.Where("user_id = ? AND group_id = ?", user.ID, group.ID).
			First(&membership).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := DB.Create(&membership).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}
