package document

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	documenterrors "hris-portal/internal/document/errors"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartOverhead covers part headers and the small form fields sent next to the file.
const multipartOverhead = 64 << 10

type Handler struct {
	service Service
	maxBody int64
	logger  *zap.Logger
}

func NewHandler(service Service, maxUploadMB int64, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	if maxUploadMB <= 0 {
		maxUploadMB = defaultMaxUploadMB
	}
	return &Handler{service: service, maxBody: maxUploadMB<<20 + multipartOverhead, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// readUpload pulls the multipart file; the caller closes the returned file.
// The body is capped before parsing so an oversized upload is never spooled to disk.
func (h *Handler) readUpload(c *gin.Context) (UploadInput, multipart.File, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return UploadInput{}, nil, documenterrors.ErrFileTooLarge
		}
		return UploadInput{}, nil, documenterrors.ErrFileRequired
	}
	f, err := fh.Open()
	if err != nil {
		return UploadInput{}, nil, err
	}
	return UploadInput{
		Category: c.PostForm("category"),
		LeaveID:  c.PostForm("leave_id"),
		FileName: fh.Filename,
		Size:     fh.Size,
		Content:  f,
	}, f, nil
}

func writeFile(c *gin.Context, f File) {
	defer f.Content.Close()
	c.DataFromReader(http.StatusOK, f.SizeBytes, f.ContentType, f.Content, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, f.FileName),
	})
}

func (h *Handler) Upload(c *gin.Context) {
	in, f, err := h.readUpload(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer f.Close()

	resp, err := h.service.Upload(c.Request.Context(), access.FromGin(c), c.Param("id"), in)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), access.FromGin(c), c.Param("id"), c.Query("category"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	f, err := h.service.Download(c.Request.Context(), access.FromGin(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writeFile(c, f)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), access.FromGin(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) UploadOwn(c *gin.Context) {
	in, f, err := h.readUpload(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer f.Close()

	resp, err := h.service.UploadOwn(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), in)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListOwn(c *gin.Context) {
	resp, err := h.service.ListOwn(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Query("category"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadOwn(c *gin.Context) {
	f, err := h.service.DownloadOwn(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writeFile(c, f)
}

func (h *Handler) DeleteOwn(c *gin.Context) {
	if err := h.service.DeleteOwn(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
