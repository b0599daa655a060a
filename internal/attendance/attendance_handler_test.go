package attendance_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hris-portal/internal/attendance"
	attendanceerrors "hris-portal/internal/attendance/errors"
	attendanceMock "hris-portal/internal/attendance/mock"
	"hris-portal/internal/shared/access"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(actor access.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", actor.UserID)
		c.Set("company_id", actor.CompanyID)
		c.Set("role", actor.Role)
		c.Next()
	})
	return r
}

func TestAttendanceHandler_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := attendanceMock.NewMockService(ctrl)
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleHR}
	employeeID := uuid.New().String()

	svc.EXPECT().
		GetAll(gomock.Any(), actor, gomock.Any()).
		DoAndReturn(func(_ any, _ access.Actor, f attendance.ListFilter) ([]attendance.AttendanceResponse, int64, error) {
			assert.Equal(t, employeeID, f.EmployeeID)
			assert.Equal(t, attendance.StatusLate, f.Status)
			assert.Equal(t, "2026-03-01", f.From.Format(time.DateOnly))
			assert.Nil(t, f.To)
			return []attendance.AttendanceResponse{{ID: "a1"}}, 1, nil
		})

	r := newRouter(actor)
	r.GET("/attendances", attendance.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances?employee_id="+employeeID+"&status=late&from=2026-03-01", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestAttendanceHandler_GetAll_BadRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := attendanceMock.NewMockService(ctrl)

	r := newRouter(access.Actor{CompanyID: uuid.New().String()})
	r.GET("/attendances", attendance.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances?from=2026-03-10&to=2026-03-01", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandler_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := attendanceMock.NewMockService(ctrl)
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleHR}

	t.Run("validation", func(t *testing.T) {
		r := newRouter(actor)
		r.POST("/attendances", attendance.NewHandler(svc).Record)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(`{"work_date":"03/02/2026","status":"HOLIDAY"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc.EXPECT().Record(gomock.Any(), actor, gomock.Any()).Return(attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyRecorded)

		r := newRouter(actor)
		r.POST("/attendances", attendance.NewHandler(svc).Record)

		body := `{"employee_id":"` + uuid.New().String() + `","work_date":"2026-03-02","status":"ABSENT"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAttendanceHandler_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := attendanceMock.NewMockService(ctrl)
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleSupervisor}
	employeeID := uuid.New().String()

	svc.EXPECT().
		SummaryFor(gomock.Any(), actor, employeeID, gomock.Any(), gomock.Any()).
		Return(attendance.Summary{Present: 20, Late: 2, LateMinutes: 35}, nil)

	r := newRouter(actor)
	r.GET("/attendances/summary", attendance.NewHandler(svc).Summary)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances/summary?employee_id="+employeeID+"&from=2026-01-01&to=2026-03-31", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"late_minutes":35`)
	assert.Contains(t, w.Body.String(), `"from":"2026-01-01"`)
}
