package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/auth"
	"github.com/ssaandco/aicatalog/internal/config"
	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/types"
)

// Header aliases accepted from the upstream auth proxy, in priority order.
// First non-empty value wins per category.
var (
	EmailHeaders = []string{
		"X-Auth-Request-Email",
		"X-Email",
		"X-User-Email",
		"X-Auth-Email",
		"X-Forwarded-Email",
	}
	UserHeaders = []string{
		"X-Auth-Request-User",
		"X-User",
		"X-User-Id",
		"X-Auth-User",
	}
	GroupsHeaders = []string{
		"X-Auth-Request-Groups",
		"X-Groups",
	}
)

// HeaderValue returns the first non-empty value among the given header
// names.
func HeaderValue(c *gin.Context, names []string) string {
	for _, name := range names {
		if v := c.GetHeader(name); v != "" {
			return v
		}
	}
	return ""
}

// Auth resolves the caller's identity into a types.AuthContext, lazily
// provisioning the User row. Identity comes from a bearer token when one is
// presented, otherwise from the proxy headers.
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, err := resolveAuthContext(c, cfg)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(types.ContextAuthKey, authCtx)
		c.Next()
	}
}

func resolveAuthContext(c *gin.Context, cfg *config.Config) (*types.AuthContext, error) {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return resolveTokenIdentity(strings.TrimPrefix(header, "Bearer "))
	}

	email := strings.ToLower(HeaderValue(c, EmailHeaders))
	displayName := HeaderValue(c, UserHeaders)
	isDevFallback := false

	// Local-testing impersonation, never honored in production.
	if !cfg.IsProduction() && cfg.DevImpersonateEmail != "" {
		email = cfg.DevImpersonateEmail
	}

	if email == "" {
		if cfg.DefaultAuthEmail == "" && cfg.IsProduction() {
			return nil, apperr.Unauthorized("Missing authenticated email")
		}
		if cfg.DefaultAuthEmail != "" {
			email = cfg.DefaultAuthEmail
		} else {
			email = cfg.DevAdminEmail
		}
		isDevFallback = true
	}

	isAdmin := cfg.IsAdminEmail(email)

	if !isAdmin && !cfg.IsAllowedDomain(email) {
		return nil, apperr.Forbidden("Email domain not allowed")
	}

	role := types.RoleSubmitter
	if isAdmin || isDevFallback {
		role = types.RoleAdmin
	} else if cfg.IsCommitteeEmail(email) {
		role = types.RoleCommittee
	}

	user, err := findOrCreateUser(email, displayName, role)
	if err != nil {
		return nil, err
	}

	return buildAuthContext(user)
}

func resolveTokenIdentity(tokenString string) (*types.AuthContext, error) {
	userID, err := auth.VerifyJWT(tokenString)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("User not found")
		}
		return nil, apperr.Internal("Authentication failed", err)
	}

	return buildAuthContext(&user)
}

// findOrCreateUser provisions the user row on first sight of an email and
// promotes the stored role when the computed role outranks it. Roles are
// never demoted here. The email uniqueIndex is the race backstop: a
// duplicate-key failure on create means another request won, so re-fetch.
func findOrCreateUser(email, displayName, role string) (*models.User, error) {
	var user models.User

	err := db.DB.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: email, Role: role}
		if displayName != "" {
			user.Name = &displayName
		}

		createErr := db.DB.Create(&user).Error
		if createErr == nil {
			return &user, nil
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return nil, apperr.Internal("Failed to provision user", createErr)
		}

		if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
			return nil, apperr.Internal("Failed to provision user", err)
		}
	} else if err != nil {
		return nil, apperr.Internal("Failed to resolve user", err)
	}

	if types.RoleRank(role) > types.RoleRank(user.Role) {
		if err := db.DB.Model(&user).Update("role", role).Error; err != nil {
			return nil, apperr.Internal("Failed to update user role", err)
		}
		user.Role = role
	}

	return &user, nil
}

func buildAuthContext(user *models.User) (*types.AuthContext, error) {
	var memberships []models.GroupMembership

	err := db.DB.Preload("Group").Where("user_id = ?", user.ID).Find(&memberships).Error
	if err != nil {
		return nil, apperr.Internal("Failed to load group memberships", err)
	}

	groupIDs := make([]uint, 0, len(memberships))
	groupSlugs := make([]string, 0, len(memberships))

	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
		groupSlugs = append(groupSlugs, m.Group.Slug)
	}

	return &types.AuthContext{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		IsAdmin:     user.Role == types.RoleAdmin,
		IsCommittee: user.Role == types.RoleCommittee || user.Role == types.RoleAdmin,
		GroupIDs:    groupIDs,
		GroupSlugs:  groupSlugs,
	}, nil
}
