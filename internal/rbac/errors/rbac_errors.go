package rbacerrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role id",
		http.StatusBadRequest,
	)
	ErrInvalidRoleName = apperror.New(
		apperror.CodeInvalidInput,
		"role name must be upper case letters, digits or underscores",
		http.StatusBadRequest,
	)
	ErrUnknownPermission = apperror.New(
		apperror.CodeInvalidInput,
		"unknown permission",
		http.StatusBadRequest,
	)
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrRoleExists = apperror.New(
		apperror.CodeConflict,
		"role with the same name already exists",
		http.StatusConflict,
	)
	ErrSystemRole = apperror.New(
		apperror.CodeInvalidState,
		"built-in roles cannot be renamed or deleted",
		http.StatusUnprocessableEntity,
	)
	ErrRoleInUse = apperror.New(
		apperror.CodeInvalidState,
		"role is still assigned to users",
		http.StatusUnprocessableEntity,
	)
)
