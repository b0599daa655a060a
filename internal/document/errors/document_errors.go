package documenterrors

import (
	"net/http"

	"hris-portal/internal/shared/apperror"
)

var (
	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid document id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"category must be one of PHOTO, CONTRACT, ID, CERTIFICATE, LEAVE_ATTACHMENT, OTHER",
		http.StatusBadRequest,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"file is required",
		http.StatusBadRequest,
	)
	ErrLeaveRequired = apperror.New(
		apperror.CodeInvalidInput,
		"leave_id is required for leave attachments",
		http.StatusBadRequest,
	)
	ErrPhotoNotImage = apperror.New(
		apperror.CodeInvalidInput,
		"photo must be a PNG or JPEG image",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		"FILE_TOO_LARGE",
		"file exceeds the upload size limit",
		http.StatusRequestEntityTooLarge,
	)
	ErrUnsupportedType = apperror.New(
		"UNSUPPORTED_MEDIA_TYPE",
		"only PDF, PNG and JPEG files are accepted",
		http.StatusUnsupportedMediaType,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)
	ErrOutOfScope = apperror.New(
		apperror.CodeForbidden,
		"employee is outside your departments",
		http.StatusForbidden,
	)
	ErrAttachedToLeave = apperror.New(
		apperror.CodeInvalidState,
		"document is attached to a leave request",
		http.StatusUnprocessableEntity,
	)
)
