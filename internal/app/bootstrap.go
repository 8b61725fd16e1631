package app

import (
	"backend/internal/app/access"
	"backend/internal/app/activity"
	"backend/internal/app/board"
	"backend/internal/app/card"
	"backend/internal/app/checklist"
	"backend/internal/app/comment"
	"backend/internal/app/health"
	"backend/internal/app/label"
	"backend/internal/app/list"
	"backend/internal/app/ordering"
	"backend/internal/app/workspace"
	"backend/internal/config"
	"backend/internal/db"
	"backend/internal/gateways/websocket"
	"backend/internal/providers/redis"
	"backend/internal/router"
	"backend/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
	Audit  *activity.Logger
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	eventBus := utils.NewEventBus()

	resolver := access.NewResolver(access.NewStore(dbConn))
	orders := ordering.NewEngine(dbConn)

	activityRepo := activity.NewRepository(dbConn)
	audit := activity.NewLogger(activityRepo, logger)
	go audit.Run()

	workspaceRepo := workspace.NewRepository(dbConn)
	boardRepo := board.NewRepository(dbConn)
	listRepo := list.NewRepository(dbConn)
	cardRepo := card.NewRepository(dbConn)
	labelRepo := label.NewRepository(dbConn)
	checklistRepo := checklist.NewRepository(dbConn)
	commentRepo := comment.NewRepository(dbConn)

	workspaceService := workspace.NewService(workspaceRepo, resolver, orders, audit, eventBus, redisProvider, logger)
	boardService := board.NewService(boardRepo, resolver, orders, audit, eventBus, redisProvider, logger)
	listService := list.NewService(listRepo, resolver, orders, audit, eventBus, redisProvider, logger)
	cardService := card.NewService(cardRepo, resolver, orders, audit, eventBus, redisProvider, logger)
	labelService := label.NewService(labelRepo, resolver, audit, eventBus, redisProvider, logger)
	checklistService := checklist.NewService(checklistRepo, resolver, audit, eventBus, logger)
	commentService := comment.NewService(commentRepo, resolver, audit, eventBus, logger)

	hub := websocket.NewHub(logger, eventBus)
	go hub.Run()

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
	})

	r := router.NewRouter(logger)

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterWebSocketRoutes(hub)
	r.RegisterWorkspaceRoutes(workspace.NewHandler(workspaceService))
	r.RegisterBoardRoutes(board.NewHandler(boardService))
	r.RegisterListRoutes(list.NewHandler(listService))
	r.RegisterCardRoutes(card.NewHandler(cardService))
	r.RegisterLabelRoutes(label.NewHandler(labelService))
	r.RegisterChecklistRoutes(checklist.NewHandler(checklistService))
	r.RegisterCommentRoutes(comment.NewHandler(commentService))
	r.RegisterActivityRoutes(activity.NewHandler(activityRepo, resolver))
	r.RegisterSwaggerRoutes()

	return &Application{
		Router: r,
		DB:     dbConn,
		Audit:  audit,
	}, nil
}
