package departmenterrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameExists = apperror.New(
		apperror.CodeConflict,
		"A department with this name already exists",
		http.StatusConflict,
	)
	ErrDepartmentInUse = apperror.New(
		apperror.CodeInvalidState,
		"Department still has positions assigned",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
	ErrSupervisorNotFound = apperror.New(
		apperror.CodeNotFound,
		"Supervisor user not found",
		http.StatusNotFound,
	)
	ErrUserNotSupervisor = apperror.New(
		apperror.CodeInvalidInput,
		"User does not have the supervisor role",
		http.StatusBadRequest,
	)
)
