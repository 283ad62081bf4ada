package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Error is a user-correctable input problem. Message is safe to show to the
// user; Fields maps offending json field names to what is wrong with them.
type Error struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an Error carrying message and wrapping cause.
func New(message string, cause error) *Error {
	return &Error{Message: message, Err: cause}
}

// Struct runs the validate tags of v. Failures come back as *Error with the
// given message.
func Struct(v any, message string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fmt.Errorf("validate %T: %w", v, err)
	}

	fields := make(map[string]string, len(vErrs))
	for _, vErr := range vErrs {
		fields[vErr.Field()] = describe(vErr)
	}
	return &Error{Message: message, Fields: fields, Err: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value missing"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return "value is less than " + fe.Param()
	case "max", "lte":
		return "value is greater than " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "uuid", "uuid4":
		return "must be a valid id"
	}
	return "is invalid"
}
