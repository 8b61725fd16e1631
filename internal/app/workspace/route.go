package workspace

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/workspaces", handler.ListWorkspaces)
	rg.POST("/workspaces", handler.CreateWorkspace)
	rg.GET("/workspaces/:id", handler.GetWorkspace)
	rg.PUT("/workspaces/:id", handler.UpdateWorkspace)
	rg.DELETE("/workspaces/:id", handler.DeleteWorkspace)
	rg.PUT("/workspaces/:id/members", handler.UpsertMember)
	rg.DELETE("/workspaces/:id/members/:user_id", handler.RemoveMember)
	rg.GET("/workspaces/:id/cards/archived", handler.ListArchivedCards)
}
