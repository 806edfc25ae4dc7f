// Package validate checks input structs against their `validate` tags and
// reports failures as apperr.ValidationError keyed by JSON field name.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/objectid"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(JSONName)
		if err := v.RegisterValidation("objectid", isObjectID); err != nil {
			panic(err)
		}
		instance = v
	})
	return instance
}

// JSONName reports a struct field by its JSON name. Register it on any
// validator whose errors reach API clients.
func JSONName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// isObjectID accepts strings that parse as identifiers and non-zero objectid.ID values.
func isObjectID(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case string:
		_, err := objectid.Parse(v)
		return err == nil
	case objectid.ID:
		return !v.IsZero()
	}
	return false
}

// Struct validates s. It returns nil or an *apperr.ValidationError.
func Struct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	return Translate(err)
}

// Translate converts validator failures into an *apperr.ValidationError.
// Other errors are wrapped unchanged.
func Translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating input: %w", err)
	}

	out := &apperr.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, apperr.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " characters"
	case "datetime":
		return "must be a date formatted as " + fe.Param()
	case "objectid":
		return "must be a 24-character hex identifier"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
