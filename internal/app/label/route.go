package label

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/workspaces/:id/labels", handler.ListLabels)
	rg.POST("/workspaces/:id/labels", handler.CreateLabel)
	rg.PUT("/labels/:id", handler.UpdateLabel)
	rg.DELETE("/labels/:id", handler.DeleteLabel)
}
