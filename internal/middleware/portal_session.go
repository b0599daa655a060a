package middleware

import (
	"context"

	autherrors "hris-portal/internal/auth/errors"
	"hris-portal/internal/shared/contextutil"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const PortalSessionCookie = "portal_session"

// SessionAuthenticator resolves a portal session id to the employee behind it
// and extends the session.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, sessionID string) (contextutil.Principal, error)
}

func PortalSession(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(PortalSessionCookie)
		if err != nil || sid == "" {
			response.AbortFail(c, autherrors.ErrSessionMissing)
			return
		}

		ctx := c.Request.Context()
		p, err := auth.Authenticate(ctx, sid)
		if err != nil {
			response.AbortFail(c, err)
			return
		}

		c.Set("employee_id", p.ID)
		c.Set("company_id", p.CompanyID)
		c.Set("portal_session_id", sid)

		ctx = contextutil.WithPrincipal(ctx, p)
		logger := contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("employee_id", p.ID),
			zap.String("company_id", p.CompanyID),
		)
		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, logger))

		c.Next()
	}
}
