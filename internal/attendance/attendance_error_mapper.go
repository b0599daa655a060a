package attendance

import (
	attendanceerrors "hris-portal/internal/attendance/errors"
	"hris-portal/internal/shared/dberr"
)

var repositoryErrors = dberr.Mapping{
	NotFound: attendanceerrors.ErrAttendanceNotFound,
	Unique: map[string]error{
		"uq_attendance_employee_date": attendanceerrors.ErrAlreadyRecorded,
	},
}

func mapRepositoryError(err error) error {
	return repositoryErrors.Map(err)
}
