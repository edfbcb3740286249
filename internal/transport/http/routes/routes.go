package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-community/internal/core/domain"
	"github.com/arklim/social-platform-community/internal/core/port"
	"github.com/arklim/social-platform-community/internal/infra/config"
	"github.com/arklim/social-platform-community/internal/transport/http/handlers"
	"github.com/arklim/social-platform-community/internal/transport/http/middleware"
	"github.com/arklim/social-platform-community/internal/usecase"
)

// Dependencies carries everything the router needs to assemble handlers.
type Dependencies struct {
	Config        *config.AppConfig
	Logger        *zap.Logger
	AuthService   *usecase.AuthService
	PostService   *usecase.PostService
	RateLimits    port.RateLimitStore
	HealthHandler *handlers.HealthHandler
	Registry      *prometheus.Registry
}

// New assembles the gin engine with the full middleware chain and routes.
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.EnrichContext())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.CORS([]string{"*"}))

	if deps.Registry != nil {
		metrics := middleware.NewHTTPMetrics(deps.Registry)
		router.Use(metrics.Handler())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/healthz", deps.HealthHandler.Status)
	router.GET("/readyz", deps.HealthHandler.Readiness)

	identify := func(c *gin.Context, token string) (domain.Viewer, error) {
		return deps.AuthService.IdentifyViewer(c.Request.Context(), token)
	}

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Logger)
	postHandler := handlers.NewPostHandler(deps.PostService, deps.Logger)

	api := router.Group("/api")

	auth := api.Group("/auth")
	if deps.RateLimits != nil {
		auth.Use(middleware.RateLimiter(deps.RateLimits, middleware.RateLimiterConfig{
			Window:      deps.Config.RateLimit.WindowDuration,
			MaxAttempts: deps.Config.RateLimit.LoginMaxAttempts,
		}, middleware.ClientIPIdentifier("login"), deps.Logger))
	}
	auth.POST("/login", authHandler.Login)

	posts := api.Group("/community/posts")
	{
		posts.GET("", middleware.OptionalAuth(identify), postHandler.List)
		posts.GET("/:id", middleware.OptionalAuth(identify), postHandler.Get)
		posts.POST("", middleware.RequireAuth(identify), postHandler.Create)
		posts.PATCH("/:id/visibility", middleware.RequireAuth(identify), postHandler.UpdateVisibility)
		posts.DELETE("/:id", middleware.RequireAuth(identify), postHandler.Delete)
	}

	return router
}
