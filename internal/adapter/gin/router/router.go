package router

import (
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-profile-service/internal/adapter/gin/handler"
	"user-profile-service/internal/adapter/gin/middleware"
)

// SetupRouter configures and returns a gin router with all routes and
// middleware.
func SetupRouter(
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	rateLimiter *middleware.RateLimiter,
	production bool,
	log *zap.Logger,
) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(rateLimiter.Middleware())

	// Health endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)

	// Swagger UI backed by the hand-maintained OpenAPI document. The
	// document lives outside the /swagger prefix, a static route there
	// would collide with the catch-all.
	router.GET("/openapi/user-profile.swagger.json", func(c *gin.Context) {
		c.File("./api/openapi/user-profile.swagger.json")
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/openapi/user-profile.swagger.json"),
	)))

	// API routes
	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	return router
}
