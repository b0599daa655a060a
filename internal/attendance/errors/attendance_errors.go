package attendanceerrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrInvalidAttendanceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance ID",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"Already clocked in for today",
		http.StatusConflict,
	)
	ErrAlreadyRecorded = apperror.New(
		apperror.CodeConflict,
		"Attendance already recorded for this employee and date",
		http.StatusConflict,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"No open clock-in for today",
		http.StatusUnprocessableEntity,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeInvalidState,
		"Already clocked out for today",
		http.StatusUnprocessableEntity,
	)
	ErrClockInRequired = apperror.New(
		apperror.CodeInvalidInput,
		"clock_in is required unless status is ABSENT",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"clock_out must be after clock_in",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range, expected YYYY-MM-DD with from <= to",
		http.StatusBadRequest,
	)
	ErrOutOfScope = apperror.New(
		apperror.CodeForbidden,
		"Employee is outside your assigned departments",
		http.StatusForbidden,
	)
)
