package card

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.POST("/lists/:id/cards", handler.CreateCard)
	rg.GET("/cards/:id", handler.GetCard)
	rg.PUT("/cards/:id", handler.UpdateCard)
	rg.DELETE("/cards/:id", handler.ArchiveCard)
	rg.PUT("/cards/:id/restore", handler.RestoreCard)
	rg.DELETE("/cards/:id/permanent", handler.PermanentDelete)
}
