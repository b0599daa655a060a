package usererrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"user with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)

	ErrUnknownRole = apperror.New(
		apperror.CodeInvalidInput,
		"role does not exist",
		http.StatusBadRequest,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"current password is incorrect",
		http.StatusBadRequest,
	)

	ErrSamePassword = apperror.New(
		apperror.CodeInvalidInput,
		"new password must differ from the current one",
		http.StatusBadRequest,
	)

	ErrSelfChange = apperror.New(
		apperror.CodeInvalidState,
		"you cannot change your own role or status",
		http.StatusUnprocessableEntity,
	)

	ErrLastAdmin = apperror.New(
		apperror.CodeInvalidState,
		"the company must keep at least one active admin",
		http.StatusUnprocessableEntity,
	)
)
