// Package dberr classifies driver errors that surface through gorm.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
	codeSerialization      = "40001"
	codeDeadlock           = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// sqlite reports constraint failures only as text.
func sqliteUnique(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || pgCode(err) == codeUniqueViolation || sqliteUnique(err)
}

// IsExclusionViolation reports an EXCLUDE constraint hit, e.g. overlapping ranges.
func IsExclusionViolation(err error) bool {
	return pgCode(err) == codeExclusionViolation
}

// IsConflict covers every storage error that means another writer won.
func IsConflict(err error) bool {
	switch pgCode(err) {
	case codeUniqueViolation, codeExclusionViolation, codeSerialization, codeDeadlock:
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || sqliteUnique(err)
}
