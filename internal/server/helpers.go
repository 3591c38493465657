package server

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 5 * time.Second

// requestContext derives the storage context for a handler from the request
// context, which carries the request and trace IDs.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// parseID extracts a route parameter by name as a positive uint. A malformed
// value is a validation failure on ["path", "id"].
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError(validation.PathID())
	}
	return uint(id), nil
}

// parseBody decodes the JSON request body into dst. Decoding failures are
// reported as validation errors so they surface as 422.
func parseBody(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return models.NewValidationError(validation.MissingBody())
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return models.NewValidationError(validation.TypeMismatch(typeErr.Field, typeErr.Type.Kind()))
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return models.NewValidationError(validation.InvalidJSON(syntaxErr.Error()))
		}
		return models.NewValidationError(validation.InvalidJSON(err.Error()))
	}
	return nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// formatDate renders a post date the way the pages show it.
func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
