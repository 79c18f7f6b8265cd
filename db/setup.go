package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/internal/models"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the services rely on.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

// Migrate applies the schema to the given connection. Split out from
// MigrateDatabase so tests can migrate an in-memory database.
func Migrate(conn *gorm.DB) error {
	if err := conn.SetupJoinTable(&models.UseCase{}, "Tools", &models.UseCaseTool{}); err != nil {
		return err
	}

	if err := conn.SetupJoinTable(&models.UseCase{}, "Groups", &models.UseCaseGroup{}); err != nil {
		return err
	}

	entities := []interface{}{
		&models.User{},
		&models.Group{},
		&models.GroupMembership{},
		&models.Tool{},
		&models.UseCase{},
	}

	migrator := conn.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := conn.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}
