package router

import (
	"backend/internal/app/activity"
	"backend/internal/app/board"
	"backend/internal/app/card"
	"backend/internal/app/checklist"
	"backend/internal/app/comment"
	"backend/internal/app/health"
	"backend/internal/app/label"
	"backend/internal/app/list"
	"backend/internal/app/workspace"
	"backend/internal/gateways/websocket"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(logger *zap.Logger) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())

	api := engine.Group("/api")
	api.Use(middleware.Identity())

	return &Router{Engine: engine, api: api}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterWebSocketRoutes(hub *websocket.Hub) {
	websocket.RegisterRoutes(r.Engine, hub)
}

func (r *Router) RegisterWorkspaceRoutes(handler workspace.Handler) {
	workspace.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterBoardRoutes(handler board.Handler) {
	board.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterListRoutes(handler list.Handler) {
	list.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterCardRoutes(handler card.Handler) {
	card.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterLabelRoutes(handler label.Handler) {
	label.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterChecklistRoutes(handler checklist.Handler) {
	checklist.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterCommentRoutes(handler comment.Handler) {
	comment.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterActivityRoutes(handler activity.Handler) {
	activity.RegisterRoutes(r.api, handler)
}

func (r *Router) RegisterSwaggerRoutes() {
	r.Engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (r *Router) Serve(addr string) error {
	return r.Engine.Run(addr)
}
