package auth

import (
	"net/http"
	"time"

	autherrors "hris-portal/internal/auth/errors"
	"hris-portal/internal/middleware"
	"hris-portal/internal/shared/apperror"
	platform "hris-portal/internal/shared/request"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookieConfig controls the token cookies handed to web clients.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Handler struct {
	service Service
	cookies CookieConfig
	logger  *zap.Logger
}

func NewHandler(s Service, cookies CookieConfig, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, cookies: cookies, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func isWeb(c *gin.Context) bool {
	return platform.IsWebClient(platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent")))
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) setTokenCookies(c *gin.Context, access, refresh string) {
	h.setCookie(c, middleware.AccessTokenCookie, access, int(h.cookies.AccessTTL.Seconds()))
	h.setCookie(c, middleware.RefreshTokenCookie, refresh, int(h.cookies.RefreshTTL.Seconds()))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	access, refresh, userResp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWeb(c) {
		h.setTokenCookies(c, access, refresh)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  access,
		"refresh_token": refresh,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userResp, err := h.service.GetMe(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userResp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, middleware.AccessTokenCookie, "", -1)
	h.setCookie(c, middleware.RefreshTokenCookie, "", -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

// RefreshToken reads the cookie for web clients and the JSON body otherwise.
func (h *Handler) RefreshToken(c *gin.Context) {
	web := isWeb(c)

	var refreshToken string
	if web {
		cookie, err := c.Cookie(middleware.RefreshTokenCookie)
		if err != nil || cookie == "" {
			response.Fail(c, autherrors.ErrRefreshTokenMissing)
			return
		}
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, autherrors.ErrRefreshTokenMissing)
			return
		}
		refreshToken = req.RefreshToken
	}

	access, refresh, userResp, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if web {
		h.setTokenCookies(c, access, refresh)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  access,
		"refresh_token": refresh,
	}, nil)
}
