package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"taskapi/internal/adapter/http/handler"
	"taskapi/internal/adapter/http/middleware"
	"taskapi/internal/core/port"
	"taskapi/internal/core/telemetry"
	"taskapi/pkg/auth"
	"taskapi/pkg/config"
)

type HandlersConfig struct {
	AuthHandler   *handler.AuthHandler
	TaskHandler   *handler.TaskHandler
	HealthHandler *handler.HealthHandler
	Tokens        port.TokenValidator
}

type RouterOptions struct {
	ServiceName string
	Metrics     *telemetry.AppMetrics
	Probe       port.Telemetry
	Logger      *config.Logger
}

func SetupRouter(handlers HandlersConfig, opts RouterOptions) *gin.Engine {
	if opts.Probe == nil {
		opts.Probe = telemetry.NewNoOpProbe()
	}

	if opts.Logger == nil {
		opts.Logger = config.NewNopLogger()
	}

	router := gin.New()

	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.LoggingMiddleware(opts.Logger))
	router.Use(middleware.MetricsMiddleware(opts.Metrics, opts.Probe))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.HealthHandler != nil {
		router.GET("/health", handlers.HealthHandler.Health)
	}

	api := router.Group("/api")

	if handlers.AuthHandler != nil {
		setupPublicRoutes(api, handlers.AuthHandler)
	}

	if handlers.TaskHandler != nil {
		setupProtectedRoutes(api, handlers.TaskHandler, handlers.Tokens)
	}

	return router
}

func setupPublicRoutes(api *gin.RouterGroup, authHandler *handler.AuthHandler) {
	public := api.Group("/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
	}
}

func setupProtectedRoutes(api *gin.RouterGroup, taskHandler *handler.TaskHandler, tokens port.TokenValidator) {
	protected := api.Group("/tasks")
	protected.Use(auth.GinJwtMiddleware(tokens))
	{
		protected.GET("", taskHandler.GetAllTasks)
		protected.POST("", taskHandler.CreateTask)
		protected.GET("/:id", taskHandler.GetTask)
		protected.PUT("/:id", taskHandler.UpdateTask)
		protected.PATCH("/:id", taskHandler.UpdateTask)
		protected.DELETE("/:id", taskHandler.DeleteTask)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:   []string{middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	})
}
