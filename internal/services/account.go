package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/auth"
	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/types"
)

// Legacy direct-registration path. The primary flow is header-based
// identity; these exist for environments without the auth proxy.

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=SUBMITTER COMMITTEE ADMIN"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User

	err := db.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("User with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("Failed to check existing user", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Failed to hash password", err)
	}

	role := input.Role
	if role == "" {
		role = types.RoleSubmitter
	}

	user := models.User{
		Email:        email,
		Name:         &input.Name,
		Role:         role,
		PasswordHash: string(passwordHash),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("User with this email already exists")
		}
		return nil, apperr.Internal("Failed to create user", err)
	}

	return &user, nil
}

// Login verifies credentials and issues a signed token carrying the user's
// identity. The same vague message covers unknown email and bad password.
func Login(input LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User

	err := db.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Unauthorized("Invalid email or password")
		}
		return nil, "", apperr.Internal("Failed to fetch user", err)
	}

	if user.PasswordHash == "" {
		return nil, "", apperr.Unauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperr.Unauthorized("Invalid email or password")
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", apperr.Internal("Failed to issue token", err)
	}

	return &user, token, nil
}
