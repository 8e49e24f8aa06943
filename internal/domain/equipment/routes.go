package equipment

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts equipment routes; manage gates write access.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, manage gin.HandlerFunc) {
	equipmentGroup := protected.Group("/equipment")
	{
		equipmentGroup.POST("", manage, h.Create)
		equipmentGroup.GET("/:id", h.Get)
	}
}
