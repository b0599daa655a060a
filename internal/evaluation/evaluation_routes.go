package evaluation

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
) {
	evaluations := r.Group("/evaluations")
	{
		evaluations.GET("", middleware.RBACAuthorize(rbacService, "evaluation", "read"), handler.GetAll)
		evaluations.POST("/preview", middleware.RBACAuthorize(rbacService, "evaluation", "create"), handler.Preview)
		evaluations.POST("", middleware.RBACAuthorize(rbacService, "evaluation", "create"), idempotency, handler.Create)
		evaluations.GET("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "read"), handler.GetById)
		evaluations.GET("/:id/report", middleware.RBACAuthorize(rbacService, "evaluation", "read"), handler.Report)
		evaluations.PUT("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "update"), handler.Update)
		evaluations.POST("/:id/finalize", middleware.RBACAuthorize(rbacService, "evaluation", "update"), handler.Finalize)
		evaluations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "evaluation", "delete"), handler.Delete)
	}
}
