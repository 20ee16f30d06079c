package validation

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/biduedson/reservas-api/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
				if name != "" && name != "-" {
					return FieldName(name)
				}
			}
			return fld.Name
		})
	})
	return validate
}

// ValidateStruct validates s using its `validate` struct tags.
func ValidateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.Unknown(err)
	}

	fields := make([]errors.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, errors.FieldError{
			Field:  LastSegment(e.Namespace()),
			Reason: reason(e),
		})
	}
	return errors.ValidationFailed(fields...)
}

// FromBindError converts a request body decoding error into ValidationFailed.
func FromBindError(err error) error {
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		field := FieldName(LastSegment(typeErr.Field))
		if field == "" {
			field = "body"
		}
		return errors.ValidationFailed(errors.FieldError{Field: field, Reason: "type"}).WithCause(err)
	}

	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.ValidationFailed(errors.FieldError{Field: "body", Reason: "too_large"}).WithCause(err)
	}

	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) || stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.ValidationFailed(errors.FieldError{Field: "body", Reason: "invalid_json"}).WithCause(err)
	}

	return errors.ValidationFailed(errors.FieldError{Field: "body", Reason: "invalid"}).WithCause(err)
}

// FieldName turns a wire name into the name reported in field errors:
// "senha" and "Senha" both become "Senha".
func FieldName(wire string) string {
	r, size := utf8.DecodeRuneInString(wire)
	if r == utf8.RuneError {
		return wire
	}
	return string(unicode.ToUpper(r)) + wire[size:]
}

// LastSegment returns the part of a dotted path after its final dot.
func LastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

func reason(e validator.FieldError) string {
	if e.Param() != "" {
		return e.Tag() + "=" + e.Param()
	}
	return e.Tag()
}
