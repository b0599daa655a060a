package document

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	employees := r.Group("/employees/:id/documents")
	employees.GET("", middleware.RBACAuthorize(rbacService, "document", "read"), handler.List)
	employees.POST("", middleware.RBACAuthorize(rbacService, "document", "create"), handler.Upload)

	docs := r.Group("/documents")
	docs.GET("/:id", middleware.RBACAuthorize(rbacService, "document", "read"), handler.Download)
	docs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "document", "delete"), handler.Delete)
}

// RegisterPortalRoutes mounts the employee's own document endpoints.
func RegisterPortalRoutes(r *gin.RouterGroup, handler *Handler) {
	docs := r.Group("/documents")
	docs.GET("", handler.ListOwn)
	docs.POST("", handler.UploadOwn)
	docs.GET("/:id", handler.DownloadOwn)
	docs.DELETE("/:id", handler.DeleteOwn)
}
