// Package validation checks request payloads and turns failures into field errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"inkwell/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("filename", func(fl validator.FieldLevel) bool {
			return ValidateImageFile(fl.Field().String()) == nil
		})
	})
	return validate
}

// Struct validates v against its `validate` tags. Failures are reported
// against loc ["body", <json name>].
func Struct(v any) []models.FieldError {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []models.FieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}

	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError(fe.Field(), fe.Tag(), fe.Param()))
	}
	return out
}

// Var validates a single value against tag, reporting it under field.
func Var(field string, value any, tag string) *models.FieldError {
	err := engine().Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := fieldError(field, verrs[0].Tag(), verrs[0].Param())
		return &fe
	}
	return &models.FieldError{Loc: []string{"body", field}, Msg: err.Error(), Type: "value_error"}
}

func fieldError(field, tag, param string) models.FieldError {
	fe := models.FieldError{Loc: []string{"body", field}}
	switch tag {
	case "required":
		fe.Msg, fe.Type = "field required", "value_error.missing"
	case "max":
		fe.Msg, fe.Type = fmt.Sprintf("ensure this value has at most %s characters", param), "value_error.any_str.max_length"
	case "min":
		fe.Msg, fe.Type = fmt.Sprintf("ensure this value has at least %s characters", param), "value_error.any_str.min_length"
	case "email":
		fe.Msg, fe.Type = "value is not a valid email address", "value_error.email"
	case "gt":
		fe.Msg, fe.Type = fmt.Sprintf("ensure this value is greater than %s", param), "value_error.number.not_gt"
	case "filename":
		fe.Msg, fe.Type = "value is not a valid file name", "value_error.filename"
	default:
		fe.Msg, fe.Type = fmt.Sprintf("failed on the '%s' rule", tag), "value_error"
	}
	return fe
}

// NotNull is the failure reported when a non-nullable field is sent as null.
func NotNull(field string) models.FieldError {
	return models.FieldError{
		Loc:  []string{"body", field},
		Msg:  "none is not an allowed value",
		Type: "type_error.none.not_allowed",
	}
}

// PathID is the failure reported for a malformed :id path parameter.
func PathID() models.FieldError {
	return models.FieldError{
		Loc:  []string{"path", "id"},
		Msg:  "value is not a valid integer",
		Type: "type_error.integer",
	}
}

// MissingBody is the failure reported for an empty request body.
func MissingBody() models.FieldError {
	return models.FieldError{Loc: []string{"body"}, Msg: "field required", Type: "value_error.missing"}
}

// InvalidJSON is the failure reported for a body that is not valid JSON.
func InvalidJSON(detail string) models.FieldError {
	return models.FieldError{Loc: []string{"body"}, Msg: detail, Type: "value_error.jsondecode"}
}

// TypeMismatch is the failure reported when a JSON value has the wrong type for field.
func TypeMismatch(field string, kind reflect.Kind) models.FieldError {
	fe := models.FieldError{Loc: []string{"body"}}
	if field != "" {
		fe.Loc = append(fe.Loc, field)
	}
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		fe.Msg, fe.Type = "value is not a valid integer", "type_error.integer"
	case reflect.String:
		fe.Msg, fe.Type = "str type expected", "type_error.str"
	case reflect.Struct, reflect.Map:
		fe.Msg, fe.Type = "value is not a valid dict", "type_error.dict"
	default:
		fe.Msg, fe.Type = "value has an invalid type", "type_error"
	}
	return fe
}
