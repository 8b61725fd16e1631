package board

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.POST("/workspaces/:id/boards", handler.CreateBoard)
	rg.GET("/boards/:id", handler.GetBoard)
	rg.PUT("/boards/:id", handler.UpdateBoard)
	rg.DELETE("/boards/:id", handler.DeleteBoard)
	rg.PUT("/boards/:id/members", handler.UpsertMember)
	rg.DELETE("/boards/:id/members/:user_id", handler.RemoveMember)
	rg.PUT("/boards/:id/lists/reorder", handler.ReorderLists)
}
