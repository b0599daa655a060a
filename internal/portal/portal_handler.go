package portal

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"hris-portal/internal/attendance"
	"hris-portal/internal/employee"
	"hris-portal/internal/evaluation"
	"hris-portal/internal/leave"
	"hris-portal/internal/middleware"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service     Service
	employees   employee.Service
	attendances attendance.Service
	leaves      leave.Service
	evaluations evaluation.Service
	ttl         time.Duration
	secure      bool
	logger      *zap.Logger
}

type HandlerConfig struct {
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewHandler(
	service Service,
	employees employee.Service,
	attendances attendance.Service,
	leaves leave.Service,
	evaluations evaluation.Service,
	cfg HandlerConfig,
	logger ...*zap.Logger,
) *Handler {
	l := zap.L().Named("portal.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("portal.handler")
	}
	return &Handler{
		service:     service,
		employees:   employees,
		attendances: attendances,
		leaves:      leaves,
		evaluations: evaluations,
		ttl:         cfg.SessionTTL,
		secure:      cfg.SecureCookie,
		logger:      l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("portal request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.PortalSessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func self(c *gin.Context) (companyID, employeeID string) {
	return c.GetString("company_id"), c.GetString("employee_id")
}

// =========================================
// Session
// =========================================

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	sid, resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setSessionCookie(c, sid, int(h.ttl.Seconds()))
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.GetString("portal_session_id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (h *Handler) Me(c *gin.Context) {
	companyID, employeeID := self(c)
	resp, err := h.employees.Lookup(c.Request.Context(), companyID, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// =========================================
// Attendance
// =========================================

func (h *Handler) ClockIn(c *gin.Context) {
	var req attendance.ClockInRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	companyID, employeeID := self(c)
	resp, err := h.attendances.ClockIn(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	var req attendance.ClockOutRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	companyID, employeeID := self(c)
	resp, err := h.attendances.ClockOut(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Today returns null data when the employee has not clocked in.
func (h *Handler) Today(c *gin.Context) {
	companyID, employeeID := self(c)
	resp, err := h.attendances.Today(c.Request.Context(), companyID, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Attendances(c *gin.Context) {
	from, to, err := attendance.ParseDateRange(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page := response.ParsePageQuery(c)

	companyID, employeeID := self(c)
	rows, total, err := h.attendances.ListForEmployee(c.Request.Context(), companyID, employeeID, attendance.ListFilter{
		Status: strings.ToUpper(c.Query("status")),
		From:   from,
		To:     to,
		Limit:  page.PageSize,
		Offset: page.Offset(),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page.Page, page.PageSize)
	response.Success(c, http.StatusOK, rows, &meta)
}

// =========================================
// Leave
// =========================================

func (h *Handler) Leaves(c *gin.Context) {
	page := response.ParsePageQuery(c)

	companyID, employeeID := self(c)
	rows, total, err := h.leaves.ListForEmployee(c.Request.Context(), companyID, employeeID, leave.ListFilter{
		Status: strings.ToUpper(c.Query("status")),
		Kind:   strings.ToUpper(c.Query("kind")),
		Limit:  page.PageSize,
		Offset: page.Offset(),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page.Page, page.PageSize)
	response.Success(c, http.StatusOK, rows, &meta)
}

func (h *Handler) SubmitLeave(c *gin.Context) {
	var req leave.SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	companyID, employeeID := self(c)
	resp, err := h.leaves.Submit(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetLeave(c *gin.Context) {
	companyID, employeeID := self(c)
	resp, err := h.leaves.GetForEmployee(c.Request.Context(), companyID, employeeID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CancelLeave(c *gin.Context) {
	companyID, employeeID := self(c)
	resp, err := h.leaves.Cancel(c.Request.Context(), companyID, employeeID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Balances(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		response.Fail(c, apperror.InvalidField("year"))
		return
	}

	companyID, employeeID := self(c)
	resp, err := h.leaves.ListBalances(c.Request.Context(), companyID, employeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// =========================================
// Evaluation
// =========================================

func (h *Handler) Evaluations(c *gin.Context) {
	page := response.ParsePageQuery(c)

	companyID, employeeID := self(c)
	rows, total, err := h.evaluations.ListForEmployee(c.Request.Context(), companyID, employeeID, evaluation.ListFilter{
		PeriodKey: c.Query("period_key"),
		Limit:     page.PageSize,
		Offset:    page.Offset(),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page.Page, page.PageSize)
	response.Success(c, http.StatusOK, rows, &meta)
}

func (h *Handler) GetEvaluation(c *gin.Context) {
	companyID, employeeID := self(c)
	resp, err := h.evaluations.GetForEmployee(c.Request.Context(), companyID, employeeID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AcknowledgeEvaluation(c *gin.Context) {
	companyID, employeeID := self(c)
	resp, err := h.evaluations.Acknowledge(c.Request.Context(), companyID, employeeID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EvaluationReport(c *gin.Context) {
	companyID, employeeID := self(c)
	report, err := h.evaluations.ReportForEmployee(c.Request.Context(), companyID, employeeID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	evaluation.WriteReport(c, report)
}

// bindOptionalJSON accepts an empty body as the zero value.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}
