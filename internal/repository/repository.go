package repository

import (
	"strings"

	"gorm.io/gorm"
)

// conn returns tx when the call takes part in a caller's transaction and the
// repository's own handle otherwise.
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// likePattern builds a case-insensitive LIKE operand for free-text search.
// Callers compare it against LOWER(column).
func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// notFoundIfNone turns an UPDATE/DELETE that touched no row into
// gorm.ErrRecordNotFound.
func notFoundIfNone(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
