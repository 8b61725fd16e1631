package comment

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/cards/:id/comments", handler.ListComments)
	rg.POST("/cards/:id/comments", handler.CreateComment)
	rg.DELETE("/comments/:id", handler.DeleteComment)
}
