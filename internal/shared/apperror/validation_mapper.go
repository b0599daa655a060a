package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName: work_status -> Work Status
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError reports the first failing field as the message and every
// failing field under Details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fields := make(map[string]string, len(errs))
		for _, fe := range errs {
			fields[fe.Field()] = fe.Tag()
		}

		first := errs[0]
		humanReadable := formatFieldName(first.Field())

		var appErr *AppError
		switch first.Tag() {
		case "required":
			appErr = RequiredField(humanReadable)
		default:
			appErr = InvalidField(humanReadable)
		}
		return appErr.WithDetails(fields)
	}

	return New(
		CodeValidation,
		"Invalid input",
		http.StatusBadRequest,
	)
}
