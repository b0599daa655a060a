package portal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hris-portal/internal/attendance"
	attendanceMock "hris-portal/internal/attendance/mock"
	"hris-portal/internal/document"
	documentMock "hris-portal/internal/document/mock"
	"hris-portal/internal/employee"
	employeeMock "hris-portal/internal/employee/mock"
	"hris-portal/internal/evaluation"
	evaluationMock "hris-portal/internal/evaluation/mock"
	"hris-portal/internal/leave"
	leaveMock "hris-portal/internal/leave/mock"
	"hris-portal/internal/middleware"
	"hris-portal/internal/notification"
	notificationMock "hris-portal/internal/notification/mock"
	"hris-portal/internal/portal"
	portalerrors "hris-portal/internal/portal/errors"
	portalMock "hris-portal/internal/portal/mock"
	"hris-portal/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type handlerDeps struct {
	router        *gin.Engine
	service       *portalMock.MockService
	employees     *employeeMock.MockService
	attendances   *attendanceMock.MockService
	leaves        *leaveMock.MockService
	evaluations   *evaluationMock.MockService
	notifications *notificationMock.MockService
}

func setupHandlerTest(t *testing.T) *handlerDeps {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	d := &handlerDeps{
		service:       portalMock.NewMockService(ctrl),
		employees:     employeeMock.NewMockService(ctrl),
		attendances:   attendanceMock.NewMockService(ctrl),
		leaves:        leaveMock.NewMockService(ctrl),
		evaluations:   evaluationMock.NewMockService(ctrl),
		notifications: notificationMock.NewMockService(ctrl),
	}

	h := portal.NewHandler(d.service, d.employees, d.attendances, d.leaves, d.evaluations,
		portal.HandlerConfig{SessionTTL: time.Hour})
	nh := notification.NewHandler(d.notifications, notification.EmployeeRecipient)
	dh := document.NewHandler(documentMock.NewMockService(ctrl), 10)
	noop := func(c *gin.Context) { c.Next() }

	d.router = gin.New()
	portal.RegisterRoutes(d.router.Group(""), h, d.service, nh, dh, noop)
	return d
}

// withSession makes the mocked session lookup succeed for sid.
func (d *handlerDeps) withSession(req *http.Request, sid string) {
	d.service.EXPECT().Authenticate(gomock.Any(), sid).Return(contextutil.Principal{
		Kind:      contextutil.PrincipalEmployee,
		ID:        "e1",
		CompanyID: "c1",
	}, nil)
	req.AddCookie(&http.Cookie{Name: middleware.PortalSessionCookie, Value: sid})
}

func TestPortalHandler_Login(t *testing.T) {
	t.Run("sets session cookie", func(t *testing.T) {
		d := setupHandlerTest(t)
		d.service.EXPECT().Login(gomock.Any(), portal.LoginRequest{Email: "rina@example.com", Password: "pw"}).
			Return("sid-1", portal.LoginResponse{EmployeeID: "e1", FullName: "Rina"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/portal/login", strings.NewReader(`{"email":"rina@example.com","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		d.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		if assert.Len(t, cookies, 1) {
			assert.Equal(t, middleware.PortalSessionCookie, cookies[0].Name)
			assert.Equal(t, "sid-1", cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
			assert.Equal(t, 3600, cookies[0].MaxAge)
		}
	})

	t.Run("inactive employee", func(t *testing.T) {
		d := setupHandlerTest(t)
		d.service.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", portal.LoginResponse{}, portalerrors.ErrEmployeeInactive)

		req := httptest.NewRequest(http.MethodPost, "/portal/login", strings.NewReader(`{"email":"rina@example.com","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		d.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestPortalHandler_RequiresSession(t *testing.T) {
	d := setupHandlerTest(t)
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portal/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPortalHandler_Me(t *testing.T) {
	d := setupHandlerTest(t)
	d.employees.EXPECT().Lookup(gomock.Any(), "c1", "e1").Return(employee.EmployeeResponse{ID: "e1", FullName: "Rina"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/portal/me", nil)
	d.withSession(req, "sid-1")
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_name":"Rina"`)
}

func TestPortalHandler_ClockIn(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		d := setupHandlerTest(t)
		d.attendances.EXPECT().ClockIn(gomock.Any(), "c1", "e1", attendance.ClockInRequest{}).
			Return(attendance.AttendanceResponse{ID: "a1", Status: "PRESENT"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/portal/attendance/clock-in", nil)
		d.withSession(req, "sid-1")
		w := httptest.NewRecorder()
		d.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("with notes", func(t *testing.T) {
		d := setupHandlerTest(t)
		d.attendances.EXPECT().ClockIn(gomock.Any(), "c1", "e1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
				if assert.NotNil(t, req.Notes) {
					assert.Equal(t, "wfh", *req.Notes)
				}
				return attendance.AttendanceResponse{ID: "a1"}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/portal/attendance/clock-in", strings.NewReader(`{"notes":"wfh"}`))
		req.Header.Set("Content-Type", "application/json")
		d.withSession(req, "sid-1")
		w := httptest.NewRecorder()
		d.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestPortalHandler_Leaves(t *testing.T) {
	d := setupHandlerTest(t)
	d.leaves.EXPECT().ListForEmployee(gomock.Any(), "c1", "e1", leave.ListFilter{Status: "PENDING", Limit: 10, Offset: 0}).
		Return([]leave.LeaveResponse{{ID: "l1"}}, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/portal/leaves?status=pending", nil)
	d.withSession(req, "sid-1")
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"l1"`)
}

func TestPortalHandler_SubmitLeave_Validation(t *testing.T) {
	d := setupHandlerTest(t)
	req := httptest.NewRequest(http.MethodPost, "/portal/leaves", strings.NewReader(`{"kind":"HOLIDAY"}`))
	req.Header.Set("Content-Type", "application/json")
	d.withSession(req, "sid-1")
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPortalHandler_EvaluationReport(t *testing.T) {
	d := setupHandlerTest(t)
	d.evaluations.EXPECT().ReportForEmployee(gomock.Any(), "c1", "e1", "ev1").
		Return(evaluation.Report{FileName: "evaluation.pdf", Content: []byte("%PDF-1.3")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/portal/evaluations/ev1/report", nil)
	d.withSession(req, "sid-1")
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "evaluation.pdf")
}

func TestPortalHandler_Notifications(t *testing.T) {
	d := setupHandlerTest(t)
	d.notifications.EXPECT().CountUnread(gomock.Any(), "c1", notification.Recipient{Type: notification.RecipientEmployee, ID: "e1"}).
		Return(notification.UnreadCountResponse{Unread: 3}, nil)

	req := httptest.NewRequest(http.MethodGet, "/portal/notifications/unread-count", nil)
	d.withSession(req, "sid-1")
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unread":3`)
}

func TestPortalHandler_Logout(t *testing.T) {
	d := setupHandlerTest(t)
	d.service.EXPECT().Logout(gomock.Any(), "sid-1").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/portal/logout", nil)
	d.withSession(req, "sid-1")
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	if cookies := w.Result().Cookies(); assert.Len(t, cookies, 1) {
		assert.Equal(t, -1, cookies[0].MaxAge)
	}
}
