package leaveerrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"requested period contains no working days",
		http.StatusBadRequest,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeInvalidState,
		"employee is no longer active",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending requests can be decided or cancelled",
		http.StatusUnprocessableEntity,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrRejectionNoteRequired = apperror.New(
		apperror.CodeInvalidInput,
		"note is required when rejecting",
		http.StatusBadRequest,
	)
	ErrOutOfScope = apperror.New(
		apperror.CodeForbidden,
		"employee is outside your assigned departments",
		http.StatusForbidden,
	)
)
