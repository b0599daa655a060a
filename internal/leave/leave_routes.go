package leave

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the administrative leave endpoints. idempotency guards
// request creation against client retries.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/balances", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListBalances)
		leaves.PUT("/balances", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.SetBalance)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), idempotency, handler.Create)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
	}
}
