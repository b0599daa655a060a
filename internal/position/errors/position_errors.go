package positionerrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Position not found",
		http.StatusNotFound,
	)
	ErrInvalidPositionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid position ID",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department does not exist in this company",
		http.StatusBadRequest,
	)
	ErrPositionInUse = apperror.New(
		apperror.CodeInvalidState,
		"Position is still assigned to employees",
		http.StatusUnprocessableEntity,
	)
)
