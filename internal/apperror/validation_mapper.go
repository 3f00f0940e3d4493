package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns a json tag name into a readable label,
// e.g. "per_page" -> "Per Page".
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapBindingError converts a gin binding failure into an AppError.
// Validator errors become field-level INVALID_FIELD messages; anything
// else (malformed JSON, wrong types) becomes a generic unprocessable
// input error.
func MapBindingError(err error) *AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return InvalidField(field, "is required")
		case "email":
			return InvalidField(field, "must be a valid email address")
		case "gte":
			return InvalidField(field, "must be greater than or equal to "+e.Param())
		case "lte":
			return InvalidField(field, "must be less than or equal to "+e.Param())
		default:
			return InvalidField(field, "is invalid")
		}
	}

	return New(CodeInvalidField, "invalid request body", http.StatusUnprocessableEntity)
}
