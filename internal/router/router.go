package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-planner-api/internal/config"
	"event-planner-api/internal/fluid"
	"event-planner-api/internal/handler"
	"event-planner-api/internal/middleware"
	"event-planner-api/internal/presence"
	"event-planner-api/internal/ratelimit"
	"event-planner-api/internal/repository"
	"event-planner-api/internal/service"
)

func Setup(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(strings.Split(cfg.Server.CORSOrigins, ",")))
	r.Use(middleware.MetricsMiddleware())

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Presence store and rate limiter live on Redis
	store := presence.NewStore(redisClient, logger)
	store.SetTTL(cfg.Presence.TTL())
	limiter := ratelimit.NewLimiter(redisClient, cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerMinute)

	// Services
	eventService := service.NewEventService(eventRepo, logger)
	invitationService := service.NewInvitationService(invitationRepo, eventRepo, logger)
	roomService := service.NewRoomService(roomRepo, eventRepo, logger)
	messageService := service.NewMessageService(messageRepo, roomRepo, redisClient, logger)
	presenceService := service.NewPresenceService(store, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, eventService, fluid.DefaultRegistry(), logger)

	// Handlers
	eventHandler := handler.NewEventHandler(eventService, logger)
	invitationHandler := handler.NewInvitationHandler(invitationService, logger)
	roomHandler := handler.NewRoomHandler(roomService, logger)
	messageHandler := handler.NewMessageHandler(messageService, logger)
	presenceHandler := handler.NewPresenceHandler(presenceService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	rateLimitHandler := handler.NewRateLimitHandler(limiter, logger)
	healthHandler := handler.NewHealthHandler(db, redisClient)
	wsHandler := handler.NewWSHandler(logger, cfg.Auth.SecretKey, messageService, roomService, store, redisClient)

	// Health endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", middleware.MetricsHandler())

	api := r.Group(cfg.Server.BasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)

		// WebSocket authenticates via query token during the upgrade
		api.GET("/ws/rooms/:roomId", wsHandler.HandleWebSocket)

		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(cfg.Auth.SecretKey))
		authenticated.Use(middleware.RateLimit(limiter, logger))
		{
			// Event routes
			authenticated.POST("/events", eventHandler.CreateEvent)
			authenticated.GET("/events", eventHandler.GetMyEvents)
			authenticated.GET("/events/:eventId", eventHandler.GetEvent)
			authenticated.PUT("/events/:eventId", eventHandler.UpdateEvent)
			authenticated.DELETE("/events/:eventId", eventHandler.DeleteEvent)

			// Invitation routes
			authenticated.POST("/events/:eventId/invitations", invitationHandler.CreateInvitation)
			authenticated.GET("/events/:eventId/invitations", invitationHandler.GetEventInvitations)
			authenticated.POST("/invitations/respond", invitationHandler.RespondInvitation)

			// Room routes
			authenticated.POST("/events/:eventId/rooms", roomHandler.CreateRoom)
			authenticated.GET("/events/:eventId/rooms", roomHandler.GetEventRooms)
			authenticated.GET("/rooms/:roomId", roomHandler.GetRoom)
			authenticated.DELETE("/rooms/:roomId", roomHandler.DeleteRoom)
			authenticated.POST("/rooms/:roomId/join", roomHandler.JoinRoom)
			authenticated.POST("/rooms/:roomId/leave", roomHandler.LeaveRoom)

			// Message routes
			authenticated.POST("/rooms/:roomId/messages", messageHandler.SendMessage)
			authenticated.GET("/rooms/:roomId/messages", messageHandler.GetMessages)
			authenticated.DELETE("/messages/:messageId", messageHandler.DeleteMessage)

			// Presence routes
			authenticated.POST("/presence/heartbeat", presenceHandler.Heartbeat)
			authenticated.POST("/presence/leave", presenceHandler.Leave)
			authenticated.GET("/presence/online", presenceHandler.Online)

			// Dashboard routes
			authenticated.GET("/events/:eventId/dashboard", dashboardHandler.GetConfig)
			authenticated.PUT("/events/:eventId/dashboard", dashboardHandler.UpdateConfig)
			authenticated.GET("/events/:eventId/dashboard/render", dashboardHandler.Render)
			authenticated.GET("/events/:eventId/dashboard/connections", dashboardHandler.Connections)

			// Rate limiter demo routes
			authenticated.POST("/ratelimit/consume", rateLimitHandler.Consume)
			authenticated.GET("/ratelimit/status", rateLimitHandler.Status)
			authenticated.POST("/ratelimit/reset", rateLimitHandler.Reset)
		}
	}

	return r
}
