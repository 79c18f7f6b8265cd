package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/types"
)

// SetupTestDB opens a fresh in-memory sqlite database, migrates the schema,
// and points the package-level db.DB at it until the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared-cache database per test, keyed by test name so parallel
	// packages never collide.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	prev := db.DB
	db.DB = conn

	t.Cleanup(func() {
		db.DB = prev
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return conn
}

func CreateUser(t *testing.T, email, role string) *models.User {
	t.Helper()

	user := models.User{Email: strings.ToLower(email), Role: role}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}

	return &user
}

func CreateGroup(t *testing.T, name, slug string) *models.Group {
	t.Helper()

	group := models.Group{Name: name, Slug: strings.ToLower(slug)}

	if err := db.DB.Create(&group).Error; err != nil {
		t.Fatalf("failed to create group %s: %v", slug, err)
	}

	return &group
}

func AddMember(t *testing.T, userID, groupID uint) {
	t.Helper()

	membership := models.GroupMembership{UserID: userID, GroupID: groupID}

	if err := db.DB.Create(&membership).Error; err != nil {
		t.Fatalf("failed to add member %d to group %d: %v", userID, groupID, err)
	}
}

func CreateTool(t *testing.T, name string) *models.Tool {
	t.Helper()

	tool := models.Tool{Name: name}

	if err := db.DB.Create(&tool).Error; err != nil {
		t.Fatalf("failed to create tool %s: %v", name, err)
	}

	return &tool
}

// CreateUseCase inserts a minimal use case with the given visibility for the
// submitter. Status and approval keep their defaults.
func CreateUseCase(t *testing.T, submitterID uint, name, visibility string) *models.UseCase {
	t.Helper()

	useCase := models.UseCase{
		Name:            name,
		Description:     "test description for " + name,
		SubmitterID:     submitterID,
		DateSubmitted:   time.Now().UTC(),
		Status:          types.StatusNew,
		ApprovalStatus:  types.ApprovalPendingReview,
		VisibilityScope: visibility,
	}

	if err := db.DB.Create(&useCase).Error; err != nil {
		t.Fatalf("failed to create use case %s: %v", name, err)
	}

	return &useCase
}

// AuthFor builds the auth context the middleware would have produced for
// the user, with the given group memberships.
func AuthFor(user *models.User, groupIDs ...uint) *types.AuthContext {
	return &types.AuthContext{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		IsAdmin:     user.Role == types.RoleAdmin,
		IsCommittee: user.Role == types.RoleCommittee || user.Role == types.RoleAdmin,
		GroupIDs:    groupIDs,
	}
}
