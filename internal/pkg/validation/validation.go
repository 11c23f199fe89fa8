// Package validation checks forms before any request leaves the client.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Error lists every failed field of one validated value.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return strings.Join(e.Fields, "; ")
}

var clockTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
			return clockTime.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return convert(get().Struct(s))
}

// Var validates a single value against tag.
func Var(name string, value any, tag string) error {
	err := get().Var(value, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, message(name, fe))
		}
		return &Error{Fields: msgs}
	}
	return err
}

// IsClockTime reports whether s is "HH:mm" or "HH:mm:ss".
func IsClockTime(s string) bool {
	return clockTime.MatchString(s)
}

func convert(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, message(fe.Field(), fe))
		}
		return &Error{Fields: msgs}
	}
	return err
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "clocktime":
		return field + " must be HH:mm or HH:mm:ss"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
