package evaluationerrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrInvalidEvaluationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid evaluation id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidReferenceDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reference_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodKey = apperror.New(
		apperror.CodeInvalidInput,
		"period key does not match the department evaluation frequency",
		http.StatusBadRequest,
	)
	ErrScoreOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"scores must be between 1 and 5",
		http.StatusBadRequest,
	)
	ErrNegativeAttendance = apperror.New(
		apperror.CodeInvalidInput,
		"attendance counts cannot be negative",
		http.StatusBadRequest,
	)
	ErrMissingCriterion = apperror.New(
		apperror.CodeInvalidInput,
		"every work attitude criterion must be scored",
		http.StatusBadRequest,
	)
	ErrUnknownCriterion = apperror.New(
		apperror.CodeInvalidInput,
		"unknown work attitude criterion",
		http.StatusBadRequest,
	)
	ErrWorkFunctionCount = apperror.New(
		apperror.CodeInvalidInput,
		"between 1 and 10 work functions are required",
		http.StatusBadRequest,
	)
	ErrDuplicateWorkFunction = apperror.New(
		apperror.CodeInvalidInput,
		"work function names must be unique",
		http.StatusBadRequest,
	)
	ErrEvaluationNotFound = apperror.New(
		apperror.CodeNotFound,
		"evaluation not found",
		http.StatusNotFound,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"employee already has an evaluation for this period",
		http.StatusConflict,
	)
	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"only draft evaluations can be changed",
		http.StatusUnprocessableEntity,
	)
	ErrNotFinalized = apperror.New(
		apperror.CodeInvalidState,
		"only finalized evaluations can be acknowledged",
		http.StatusUnprocessableEntity,
	)
	ErrOutOfScope = apperror.New(
		apperror.CodeForbidden,
		"employee is outside your assigned departments",
		http.StatusForbidden,
	)
)
