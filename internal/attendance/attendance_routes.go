package attendance

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the administrative attendance endpoints. Employees
// clock in and out through the portal.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/summary", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Summary)
		attendances.GET("/:id", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetById)
		attendances.POST("", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.Record)
		attendances.PUT("/:id", middleware.RBACAuthorize(rbacService, "attendance", "update"), h.Update)
		attendances.DELETE("/:id", middleware.RBACAuthorize(rbacService, "attendance", "delete"), h.Delete)
	}
}
