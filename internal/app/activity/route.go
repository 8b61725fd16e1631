package activity

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/boards/:id/activities", handler.ListBoardActivities)
	rg.GET("/workspaces/:id/activities", handler.ListWorkspaceActivities)
}
