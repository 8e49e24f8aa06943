package history

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts history routes; record gates the write.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, record gin.HandlerFunc) {
	historyGroup := protected.Group("/history")
	{
		historyGroup.POST("", record, h.Record)
		historyGroup.GET("/:id", h.Get)
	}
}
