// Package services implements the domain operations behind the HTTP layer.
// Functions operate on the shared db.DB connection and return apperr-tagged
// errors for the response layer to translate.
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/internal/apperr"
)

func normalizeQuery(page, limit *int, defaultLimit int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = defaultLimit
	}
	if *limit > 100 {
		*limit = 100
	}
}

// wrapWriteError classifies storage-level failures from multi-step writes.
// Already-tagged errors pass through unchanged.
func wrapWriteError(err error, message string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.Validation("Referenced record does not exist")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(message)
	}
	return apperr.Internal(message, err)
}
