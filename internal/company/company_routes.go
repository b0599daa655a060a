package company

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	company := r.Group("/company")
	{
		company.GET("/me",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "company", "read"),
			handler.GetMe,
		)
		company.PUT("/me",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "company", "update"),
			handler.UpdateMe,
		)
	}
}
