// Package dberr classifies database errors independently of the driver in use.
package dberr

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation pq.ErrorCode = "23505"

// IsUniqueViolation reports whether err comes from a unique or primary key
// constraint. It understands lib/pq errors, errors translated by GORM and
// the messages of the SQLite driver used in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
