package evaluation

import (
	evaluationerrors "hris-portal/internal/evaluation/errors"
	"hris-portal/internal/shared/dberr"
)

var repositoryErrors = dberr.Mapping{
	NotFound: evaluationerrors.ErrEvaluationNotFound,
	Unique: map[string]error{
		"uq_evaluation_employee_period": evaluationerrors.ErrDuplicatePeriod,
	},
}

func mapRepositoryError(err error) error {
	return repositoryErrors.Map(err)
}
