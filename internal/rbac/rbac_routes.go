package rbac

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already run the JWT auth middleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", handler.Check)
		group.GET("/me/permissions", handler.MyPermissions)

		group.GET("/roles", middleware.RBACAuthorize(service, "role", "read"), handler.ListRoles)
		group.GET("/roles/:id", middleware.RBACAuthorize(service, "role", "read"), handler.GetRole)
		group.POST("/roles", middleware.RBACAuthorize(service, "role", "create"), handler.CreateRole)
		group.PUT("/roles/:id", middleware.RBACAuthorize(service, "role", "update"), handler.UpdateRole)
		group.DELETE("/roles/:id", middleware.RBACAuthorize(service, "role", "delete"), handler.DeleteRole)

		group.GET("/permissions", middleware.RBACAuthorize(service, "role", "read"), handler.ListPermissions)
	}
}
