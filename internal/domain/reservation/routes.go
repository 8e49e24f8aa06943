package reservation

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	reservations := protected.Group("/reservations")
	{
		reservations.POST("", h.Create)
		reservations.GET("/:id", h.Get)
		reservations.PUT("/:id", h.Update)
		reservations.DELETE("/:id", h.Delete)
	}

	equipmentGroup := protected.Group("/equipment")
	{
		equipmentGroup.GET("/:id/availability", h.Availability)
		equipmentGroup.GET("/:id/busy-slots", h.BusySlots)
	}
}
