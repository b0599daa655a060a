package user

import (
	usererrors "hris-portal/internal/user/errors"
	"hris-portal/internal/shared/dberr"
)

var repositoryErrors = dberr.Mapping{
	NotFound: usererrors.ErrUserNotFound,
	Unique: map[string]error{
		"uq_user_email": usererrors.ErrUserAlreadyExists,
	},
}

func mapRepositoryError(err error) error {
	return repositoryErrors.Map(err)
}
