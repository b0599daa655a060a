package rbac

import (
	rbacerrors "hris-portal/internal/rbac/errors"
	"hris-portal/internal/shared/dberr"
)

var repositoryErrors = dberr.Mapping{
	NotFound: rbacerrors.ErrRoleNotFound,
	Unique: map[string]error{
		"uq_role_company_name": rbacerrors.ErrRoleExists,
	},
}

func mapRepositoryError(err error) error {
	return repositoryErrors.Map(err)
}
