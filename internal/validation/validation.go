// Package validation binds and validates request payloads.
//
// It uses go-playground/validator for struct tag rules (required fields,
// email format, phone format) and turns failures into *errs.HTTPError values
// with field-level details the client can act on.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validatable is implemented by request payloads that know how to validate
// themselves, usually by calling Validator().Struct on their own tags.
type Validatable interface {
	Validate() error
}

var (
	// ErrInvalidID is returned for identifiers that are not 24-char hex tokens.
	ErrInvalidID = errs.NewBadRequestError("Invalid ID format", true, nil, nil, nil)

	// ErrEmptyBody is returned for update requests that change nothing.
	ErrEmptyBody = errs.NewBadRequestError("Body must have at least one field", true, nil, nil, nil)
)

// phoneRegex accepts digits with optional leading +, spaces, dots, dashes and
// parentheses, e.g. "(704) 398-7993" or "+380 67 123 4567".
var phoneRegex = regexp.MustCompile(`^\+?[0-9()\-.\s]{7,20}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the custom phone tag
// registered (see phoneRegex). Field names in errors come from the json tag.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})

		validate = v
	})
	return validate
}

// IsValidObjectID reports whether id has the store's identifier shape.
func IsValidObjectID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// IsValidPhone reports whether phone looks like a phone number and carries at
// least seven digits.
func IsValidPhone(phone string) bool {
	if !phoneRegex.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

// NormalizeObjectID fails with ErrInvalidID when id is malformed and
// otherwise returns it in lower case, the form every store keeps.
func NormalizeObjectID(id string) (string, error) {
	if !IsValidObjectID(id) {
		return "", ErrInvalidID
	}
	return strings.ToLower(id), nil
}

// BindAndValidate binds path params and the JSON body into payload and
// validates it.
//
// payload must be a pointer. Every failure is returned as a 400
// *errs.HTTPError; an error already shaped as *errs.HTTPError by Validate
// (e.g. ErrInvalidID) is returned unchanged.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}

		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindError turns echo's binder failures into a readable 400.
func bindError(err error) *errs.HTTPError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		want := "must be " + withArticle(jsonTypeName(typeErr.Type))
		return errs.NewBadRequestError(
			field+" "+want,
			true,
			nil,
			[]errs.FieldError{{Field: field, Error: want}},
			nil,
		)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return errs.NewBadRequestError("Request body is not valid JSON", true, nil, nil, nil)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return errs.NewBadRequestError(msg, false, nil, nil, nil)
		}
	}

	return errs.NewBadRequestError("Invalid request", false, nil, nil, nil)
}

func jsonTypeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func withArticle(noun string) string {
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + noun
	}
	return "a " + noun
}

// extractValidationError converts validator errors into field
// errors plus a one-line summary such as "email must be a valid email address".
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", nil
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"
		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}
		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())
		case "email":
			msg = "must be a valid email address"
		case "phone":
			msg = "must be a valid phone number"
		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return summarize(fieldErrors), fieldErrors
}

func summarize(fieldErrors []errs.FieldError) string {
	if len(fieldErrors) == 0 {
		return "Validation failed"
	}
	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fe.Field+" "+fe.Error)
	}
	return strings.Join(parts, "; ")
}
