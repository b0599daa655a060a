package department

import (
	departmenterrors "hris-portal/internal/department/errors"
	"hris-portal/internal/shared/dberr"
)

var repositoryErrors = dberr.Mapping{
	NotFound: departmenterrors.ErrDepartmentNotFound,
	Unique: map[string]error{
		"uq_department_name": departmenterrors.ErrDepartmentNameExists,
	},
}

func mapRepositoryError(err error) error {
	return repositoryErrors.Map(err)
}
