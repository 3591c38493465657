package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate is matched by every DuplicateError.
var ErrDuplicate = errors.New("duplicate key")

// DuplicateError reports a unique constraint violation. Field is the column
// it was detected on, or empty when the driver did not say.
type DuplicateError struct {
	Field string
	Err   error
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "duplicate key"
	}
	return "duplicate key on " + e.Field
}

func (e *DuplicateError) Unwrap() error { return e.Err }

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL unique violation SQLSTATE 23505
		return pgErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

// duplicateField guesses the violated column from the driver error.
func duplicateField(err error, fields ...string) string {
	detail := strings.ToLower(err.Error())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail = strings.ToLower(pgErr.ConstraintName + " " + pgErr.Detail + " " + pgErr.Message)
	}
	for _, f := range fields {
		if strings.Contains(detail, f) {
			return f
		}
	}
	return ""
}

// translateWriteError turns unique violations into *DuplicateError and leaves other errors alone.
func translateWriteError(err error, fields ...string) error {
	if isUniqueConstraintError(err) {
		return &DuplicateError{Field: duplicateField(err, fields...), Err: err}
	}
	return err
}
