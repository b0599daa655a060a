package middleware

import (
	"context"

	autherrors "hris-portal/internal/auth/errors"
	"hris-portal/internal/domain"
	"hris-portal/internal/shared/contextutil"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by anything that can answer an EnforceRequest.
//
//go:generate mockgen -source=rbac_middleware.go -destination=mock/rbac_middleware_mock.go -package=mock
type RBACService interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize must run after AuthMiddleware.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		companyID := c.GetString("company_id")
		if userID == "" || companyID == "" {
			response.AbortFail(c, autherrors.ErrTokenMissing)
			return
		}

		ctx := c.Request.Context()
		allowed, err := service.Enforce(ctx, domain.EnforceRequest{
			UserID:    userID,
			CompanyID: companyID,
			Resource:  resource,
			Action:    action,
		})
		if err != nil {
			contextutil.GetLogger(ctx, zap.L()).Error("rbac enforce failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			response.AbortFail(c, err)
			return
		}

		if !allowed {
			response.AbortFail(c, autherrors.ErrForbidden.WithDetails(gin.H{"required": resource + ":" + action}))
			return
		}
		c.Next()
	}
}
