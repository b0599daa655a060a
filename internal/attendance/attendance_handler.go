package attendance

import (
	"net/http"
	"strings"
	"time"

	attendanceerrors "hris-portal/internal/attendance/errors"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// ParseDateRange reads ?from=&to= as YYYY-MM-DD. Either bound may be omitted.
func ParseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateRange
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateRange
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, attendanceerrors.ErrInvalidDateRange
	}
	return from, to, nil
}

func (h *Handler) GetAll(c *gin.Context) {
	from, to, err := ParseDateRange(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page := response.ParsePageQuery(c)

	filter := ListFilter{
		EmployeeID: c.Query("employee_id"),
		Status:     strings.ToUpper(c.Query("status")),
		From:       from,
		To:         to,
		Limit:      page.PageSize,
		Offset:     page.Offset(),
	}

	rows, total, err := h.service.GetAll(c.Request.Context(), access.FromGin(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page.Page, page.PageSize)
	response.Success(c, http.StatusOK, rows, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), access.FromGin(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Record(c *gin.Context) {
	var req RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Record(c.Request.Context(), access.FromGin(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), access.FromGin(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), access.FromGin(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		response.Fail(c, apperror.RequiredField("employee_id"))
		return
	}
	from, to, err := ParseDateRange(c)
	if err != nil || from == nil || to == nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidDateRange)
		return
	}

	summary, err := h.service.SummaryFor(c.Request.Context(), access.FromGin(c), employeeID, *from, *to)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, SummaryResponse{
		EmployeeID: employeeID,
		From:       from.Format(time.DateOnly),
		To:         to.Format(time.DateOnly),
		Summary:    summary,
	}, nil)
}
