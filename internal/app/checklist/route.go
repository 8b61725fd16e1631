package checklist

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/cards/:id/checklists", handler.ListChecklists)
	rg.POST("/cards/:id/checklists", handler.CreateChecklist)
	rg.PUT("/checklists/:id", handler.UpdateChecklist)
	rg.DELETE("/checklists/:id", handler.DeleteChecklist)
}
