// Package dberr translates gorm and postgres failures into domain errors.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Mapping is a per-module translation table keyed by constraint name.
type Mapping struct {
	NotFound   error
	Unique     map[string]error
	ForeignKey map[string]error
}

// Map returns the domain error for err, or err unchanged when nothing matches.
func (m Mapping) Map(err error) error {
	if err == nil {
		return nil
	}

	if m.NotFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return m.NotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			if mapped, ok := m.Unique[pgErr.ConstraintName]; ok {
				return mapped
			}
		case foreignKeyViolation:
			if mapped, ok := m.ForeignKey[pgErr.ConstraintName]; ok {
				return mapped
			}
		}
		return err
	}

	// drivers that only surface message text
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		for name, mapped := range m.Unique {
			if strings.Contains(msg, name) {
				return mapped
			}
		}
	}

	return err
}

// IsUniqueViolation reports whether err is a unique violation on the named constraint.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
