package companyerrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(apperror.CodeNotFound, "Company not found", http.StatusNotFound)

	ErrInvalidCompanyID = apperror.New(apperror.CodeInvalidInput, "Invalid company ID", http.StatusBadRequest)

	ErrCompanyNameRequired = apperror.RequiredField("name")

	// profile edits are refused once a tenant is switched off
	ErrCompanyInactive = apperror.New(
		apperror.CodeInvalidState,
		"Company is inactive and cannot be modified",
		http.StatusConflict,
	)
)
