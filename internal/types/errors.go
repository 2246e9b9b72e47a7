package types

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NonFieldErrors is the key used for errors that are not tied to a
// single request field.
const NonFieldErrors = "non_field_errors"

// FieldErrors maps a request field to the validation messages for it.
// It is the 400 response body.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// NewFieldError builds a FieldErrors carrying a single message.
func NewFieldError(field, message string) FieldErrors {
	return FieldErrors{field: {message}}
}

// InitValidation configures the binding validator to report errors
// under JSON field names instead of Go struct field names.
func InitValidation() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// BindingErrors converts a binding failure into field-level messages.
func BindingErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return NewFieldError(NonFieldErrors, "invalid request body")
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(FieldErrors, len(verrs))
		for _, fe := range verrs {
			out.Add(fe.Field(), messageFor(fe))
		}
		return out
	}

	return NewFieldError(NonFieldErrors, "invalid request body")
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return "ensure this field has at least " + fe.Param() + " characters"
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	case "gt":
		return "ensure this value is greater than " + fe.Param()
	default:
		return "invalid value"
	}
}
