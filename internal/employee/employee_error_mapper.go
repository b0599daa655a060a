package employee

import (
	employeeerrors "hris-portal/internal/employee/errors"
	"hris-portal/internal/shared/dberr"
)

var repositoryErrors = dberr.Mapping{
	NotFound: employeeerrors.ErrEmployeeNotFound,
	Unique: map[string]error{
		"uq_employee_number": employeeerrors.ErrEmployeeNumberAlreadyExists,
		"uq_employee_email":  employeeerrors.ErrEmployeeAlreadyExists,
	},
}

func mapRepositoryError(err error) error {
	return repositoryErrors.Map(err)
}
