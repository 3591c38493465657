// Package service holds the business rules for users and posts.
package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/schema"
	"inkwell/internal/validation"
)

const (
	msgUsernameTaken = "Username already exists"
	msgEmailTaken    = "Email already registered"
)

type directTx struct{}

func (directTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func txOrDirect(tx repository.TxManager) repository.TxManager {
	if tx == nil {
		return directTx{}
	}
	return tx
}

// duplicateUserError maps a storage unique violation to the same error the
// pre-insert lookups produce. conflict selects 409 (create) over 400 (update).
func duplicateUserError(err error, conflict bool) error {
	var dup *repository.DuplicateError
	if !errors.As(err, &dup) {
		return err
	}
	msg := msgUsernameTaken
	if dup.Field == "email" {
		msg = msgEmailTaken
	}
	if conflict {
		return models.NewConflictError(msg)
	}
	return models.NewBadRequestError(msg)
}

// checkOptional validates a present PATCH field. A null value is rejected
// unless nullable is set.
func checkOptional(field string, o schema.Optional[string], rule string, nullable bool) *models.FieldError {
	if !o.Set {
		return nil
	}
	if o.Null {
		if nullable {
			return nil
		}
		fe := validation.NotNull(field)
		return &fe
	}
	return validation.Var(field, o.Value, rule)
}

func validationError(errs []models.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return models.NewValidationError(errs...)
}
