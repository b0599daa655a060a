package notification

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	n := r.Group("/notifications")
	n.Use(middleware.RBACAuthorize(rbacService, "notification", "read"))
	RegisterPortalRoutes(n, handler)
}

// RegisterPortalRoutes mounts the reader endpoints on an already scoped group.
func RegisterPortalRoutes(n *gin.RouterGroup, handler *Handler) {
	n.GET("", handler.GetAll)
	n.GET("/unread-count", handler.UnreadCount)
	n.POST("/read-all", handler.MarkAllRead)
	n.POST("/:id/read", handler.MarkRead)
}
