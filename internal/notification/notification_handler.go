package notification

import (
	"net/http"
	"strconv"

	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecipientFunc picks the reader of a request out of the gin context.
type RecipientFunc func(c *gin.Context) Recipient

// UserRecipient is the administrative user set by the auth middleware.
func UserRecipient(c *gin.Context) Recipient {
	return Recipient{Type: RecipientUser, ID: c.GetString("user_id")}
}

// EmployeeRecipient is the employee set by the portal session middleware.
func EmployeeRecipient(c *gin.Context) Recipient {
	return Recipient{Type: RecipientEmployee, ID: c.GetString("employee_id")}
}

type Handler struct {
	service   Service
	recipient RecipientFunc
	logger    *zap.Logger
}

func NewHandler(service Service, recipient RecipientFunc, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, recipient: recipient, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("notification request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	page := response.ParsePageQuery(c)
	unread, _ := strconv.ParseBool(c.Query("unread"))

	resp, total, err := h.service.List(c.Request.Context(), c.GetString("company_id"), h.recipient(c), ListFilter{
		UnreadOnly: unread,
		Limit:      page.PageSize,
		Offset:     page.Offset(),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page.Page, page.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	resp, err := h.service.CountUnread(c.Request.Context(), c.GetString("company_id"), h.recipient(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	err := h.service.MarkRead(c.Request.Context(), c.GetString("company_id"), h.recipient(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), c.GetString("company_id"), h.recipient(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n}, nil)
}
