package list

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.POST("/boards/:id/lists", handler.CreateList)
	rg.PUT("/lists/:id", handler.UpdateList)
	rg.DELETE("/lists/:id", handler.DeleteList)
	rg.PUT("/lists/:id/cards/reorder", handler.ReorderCards)
}
