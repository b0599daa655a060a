package user

import (
	"hris-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already run the JWT auth middleware.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	users := r.Group("/users")
	{
		users.PUT("/me/password", middleware.RateLimitByUser(0.2, 3), h.ChangeOwnPassword)

		users.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), h.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "read"), h.GetById)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "create"), h.Create)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "user", "update"), h.Update)
		users.PATCH("/:id/role", middleware.RBACAuthorize(rbacService, "user", "update"), h.ChangeRole)
		users.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "user", "update"), h.SetActive)
		users.POST("/:id/reset-password",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "user", "update"),
			h.ResetPassword,
		)
	}
}
