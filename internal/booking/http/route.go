package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/availability", authMiddleware, h.Availability)
	g.GET("/busy-slots", authMiddleware, h.BusySlots)

	group := g.Group("/bookings")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)

		group.POST("/:id/move", h.Move)
		group.POST("/:id/resize", h.Resize)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/reinstate", h.Reinstate)
		group.POST("/:id/session/start", h.StartSession)
		group.POST("/:id/session/stop", h.StopSession)
		group.POST("/:id/pay", h.Pay)
		group.POST("/:id/unpay", h.Unpay)
	}
}
