package routes

import (
	"fmt"

	"message-scheduler-backend/internal/api/handlers"
	"message-scheduler-backend/internal/api/middleware"
	"message-scheduler-backend/internal/auth"
	"message-scheduler-backend/internal/config"
	"message-scheduler-backend/internal/realtime"
	"message-scheduler-backend/internal/repository"
	"message-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config, hub *realtime.Hub) (*gin.Engine, error) {
	// Create router
	router := gin.New()
	router.ContextWithFallback = true

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	joinRepo := repository.NewProjectTeamMemberRepository(db)
	messageRepo := repository.NewScheduledMessageRepository(db)
	guard := repository.NewGuard("backend", cfg.BreakerMaxFailures, cfg.BreakerOpenTimeout())

	// Initialize reconciliation pipeline
	rng := service.NewTimeSeededRandomSource()
	fetcher := service.NewEntityFetcher(userRepo, projectRepo, joinRepo, messageRepo, guard)
	reconciler := service.NewReconciler(fetcher, rng)
	seeder := service.NewMessageSeeder(messageRepo, guard, rng)

	// Initialize services
	teamService := service.NewTeamService(reconciler, seeder, userRepo, hub, validator, cfg.SeedOnTeamLoad)
	projectService := service.NewProjectService(projectRepo, joinRepo, userRepo, reconciler, hub, validator)
	messageService := service.NewMessageService(messageRepo, projectRepo, userRepo, fetcher, seeder, hub, validator)

	// Initialize auth
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	authMiddleware := auth.NewAuthMiddleware(tokens)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(sqlDB, guard, Version)
	apiHandlers := APIHandlers{
		Team:     handlers.NewTeamHandler(teamService),
		Project:  handlers.NewProjectHandler(projectService),
		Message:  handlers.NewMessageHandler(messageService, nil),
		Realtime: handlers.NewRealtimeHandler(hub, cfg.AllowedOrigins),
	}

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	RegisterAPIRoutes(v1, apiHandlers, authMiddleware)

	return router, nil
}

// APIHandlers groups the handlers mounted under /api/v1
type APIHandlers struct {
	Team     *handlers.TeamHandler
	Project  *handlers.ProjectHandler
	Message  *handlers.MessageHandler
	Realtime *handlers.RealtimeHandler
}

// RegisterAPIRoutes mounts the v1 endpoints. Reads accept anonymous callers;
// every route that writes requires a valid bearer token.
func RegisterAPIRoutes(v1 *gin.RouterGroup, h APIHandlers, authMiddleware *auth.AuthMiddleware) {
	public := v1.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/team/members", h.Team.ListMembers)
		public.GET("/team/members/:id/projects", h.Team.GetMemberProjects)

		public.GET("/projects", h.Project.ListProjects)
		public.GET("/projects/:id", h.Project.GetProject)
		public.GET("/dashboard", h.Project.Dashboard)

		public.GET("/messages", h.Message.ListMessages)
		public.GET("/calendar", h.Message.MessagesOn)
		public.GET("/calendar/days", h.Message.DaysWithMessages)

		public.GET("/realtime", h.Realtime.Subscribe)
	}

	protected := v1.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Team routes
		members := protected.Group("/team/members")
		{
			members.PUT("/:id", h.Team.UpdateMember)
			members.DELETE("/:id", h.Team.DeleteMember)
		}

		// Project routes
		projects := protected.Group("/projects")
		{
			projects.POST("", h.Project.CreateProject)
			projects.PUT("/:id/status", h.Project.UpdateProjectStatus)
			projects.DELETE("/:id", h.Project.DeleteProject)
			projects.POST("/:id/members", h.Project.AddProjectMember)
			projects.DELETE("/:id/members/:memberId", h.Project.RemoveProjectMember)
		}

		// Message routes
		messages := protected.Group("/messages")
		{
			messages.POST("", h.Message.ScheduleMessage)
			messages.POST("/seed", h.Message.SeedMessages)
			messages.PUT("/:id/status", h.Message.UpdateMessageStatus)
		}
	}
}
