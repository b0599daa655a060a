package department

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already run the JWT auth middleware.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	departments := r.Group("/departments")
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), h.GetAll)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "create"), h.Create)
		departments.GET("/supervised", h.MySupervisedDepartments)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "department", "read"), h.GetById)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, "department", "update"), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "department", "delete"), h.Delete)

		departments.GET("/:id/supervisors", middleware.RBACAuthorize(rbacService, "department", "read"), h.ListSupervisors)
		departments.POST("/:id/supervisors", middleware.RBACAuthorize(rbacService, "department", "update"), h.AssignSupervisor)
		departments.DELETE("/:id/supervisors/:userId", middleware.RBACAuthorize(rbacService, "department", "update"), h.RemoveSupervisor)
	}
}
