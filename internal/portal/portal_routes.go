package portal

import (
	"hris-portal/internal/document"
	"hris-portal/internal/middleware"
	"hris-portal/internal/notification"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the employee portal. Everything except login runs
// behind the session cookie.
func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	sessions middleware.SessionAuthenticator,
	notifications *notification.Handler,
	documents *document.Handler,
	idempotency gin.HandlerFunc,
) {
	p := r.Group("/portal")
	p.POST("/login", middleware.RateLimitByIP(0.1, 5), h.Login)

	authed := p.Group("")
	authed.Use(middleware.PortalSession(sessions), middleware.RateLimitByEmployee(5, 20))
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/me", h.Me)

		authed.GET("/attendance", h.Attendances)
		authed.GET("/attendance/today", h.Today)
		authed.POST("/attendance/clock-in", h.ClockIn)
		authed.POST("/attendance/clock-out", h.ClockOut)

		authed.GET("/leaves", h.Leaves)
		authed.POST("/leaves", idempotency, h.SubmitLeave)
		authed.GET("/leaves/balances", h.Balances)
		authed.GET("/leaves/:id", h.GetLeave)
		authed.POST("/leaves/:id/cancel", h.CancelLeave)

		authed.GET("/evaluations", h.Evaluations)
		authed.GET("/evaluations/:id", h.GetEvaluation)
		authed.POST("/evaluations/:id/acknowledge", h.AcknowledgeEvaluation)
		authed.GET("/evaluations/:id/report", h.EvaluationReport)

		notification.RegisterPortalRoutes(authed.Group("/notifications"), notifications)
		document.RegisterPortalRoutes(authed, documents)
	}
}
