package portalerrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		"AUTH_FAILED",
		"invalid email or password",
		http.StatusUnauthorized,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeForbidden,
		"employees who resigned or were terminated cannot sign in",
		http.StatusForbidden,
	)
	ErrSessionExpired = apperror.New(
		apperror.CodeUnauthorized,
		"portal session expired, please sign in again",
		http.StatusUnauthorized,
	)
	ErrSessionUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"portal sessions are temporarily unavailable",
		http.StatusServiceUnavailable,
	)
)
