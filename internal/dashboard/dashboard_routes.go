package dashboard

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	r.GET("/dashboard", middleware.RBACAuthorize(rbacService, "dashboard", "read"), handler.Get)
}
