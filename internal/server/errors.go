package server

import (
	"errors"
	"log/slog"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/schema"

	"github.com/gofiber/fiber/v2"
)

const (
	msgDefaultError      = "An error occurred. Please check your request and try again."
	msgValidationPage    = "Invalid request. Please check your input and try again."
	msgInternalServerErr = "Internal server error"
)

// ErrorHandler is the app-wide Fiber error handler. Requests under /api get a
// JSON {"detail": ...} body, everything else gets the error page.
func (s *Server) ErrorHandler(c *fiber.Ctx, err error) error {
	status, message, fields := classifyError(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	if isAPIPath(c.Path()) {
		var detail any = message
		if fields != nil {
			detail = fields
		}
		return c.Status(status).JSON(schema.ErrorResponse{Detail: detail})
	}

	if fields != nil {
		message = msgValidationPage
	}
	return s.renderError(c, status, message)
}

// classifyError resolves the response status, message and, for validation
// failures, the field list.
func classifyError(err error) (int, string, []models.FieldError) {
	if appErr, ok := models.AsAppError(err); ok {
		status := appErr.HTTPStatus()
		message := appErr.Message
		if appErr.Code == models.CodeInternal {
			message = msgInternalServerErr
		}
		if appErr.Code == models.CodeValidation {
			fields := appErr.Fields
			if fields == nil {
				fields = []models.FieldError{}
			}
			return status, message, fields
		}
		if message == "" {
			message = msgDefaultError
		}
		return status, message, nil
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		message := fiberErr.Message
		if message == "" {
			message = msgDefaultError
		}
		return fiberErr.Code, message, nil
	}

	return fiber.StatusInternalServerError, msgInternalServerErr, nil
}

func (s *Server) renderError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	err := c.Render("error", fiber.Map{
		"status_code": status,
		"title":       status,
		"message":     message,
	})
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "error page render failed", slog.String("error", err.Error()))
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(status).SendString(message)
	}
	return nil
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
