// Package validation checks submitted forms with go-playground/validator
// and turns failures into field messages the views can show.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

// Field texts by tag. {0} is the field name, {1} the tag parameter.
var texts = map[string]string{
	"required":    "o campo {0} é obrigatório",
	"required_if": "o campo {0} é obrigatório",
	"min":         "o campo {0} deve ter pelo menos {1} caracteres",
	"max":         "o campo {0} deve ter no máximo {1} caracteres",
	"contains":    "o campo {0} deve conter {1}",
	"oneof":       "o campo {0} deve ser um de: {1}",
}

func init() {
	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	translator, _ = uni.GetTranslator("pt_BR")

	validate = validator.New(validator.WithRequiredStructEnabled())

	// Use form tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, text := range texts {
		registerTranslation(tag, text)
	}
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, err := t.T(tag, fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return s
		},
	)
}

// FieldError is used to indicate an error with a specific form field.
type FieldError struct {
	Field   string
	Message string
}

// Error is returned when a form fails validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for the named field, or "".
func (e *Error) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}

// Struct validates v. Validation failures are returned as *Error; any
// other error means v could not be validated at all.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(translator),
		})
	}
	return out
}

// Clean trims leading and trailing whitespace in s and optionally lowers it.
func Clean(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
