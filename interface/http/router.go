package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/alexmorbo/slack-notifier/interface/http/handler"
	"github.com/alexmorbo/slack-notifier/interface/http/middleware"
)

const maxBodyBytes = 1 << 20

func NewRouter(
	log *slog.Logger,
	notifyHandler *handler.NotifyHandler,
	routeHandler *handler.RouteHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(log))

	// Health endpoints skip the API middleware stack
	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/metrics", healthHandler.Metrics)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequestID())
	v1.Use(middleware.BodyLimit(maxBodyBytes))
	v1.Use(middleware.Metrics())
	v1.Use(middleware.Logging(log))
	{
		v1.POST("/notify", notifyHandler.Notify)

		v1.PUT("/routes/:recipient", routeHandler.Put)
		v1.GET("/routes/:recipient", routeHandler.Get)
		v1.DELETE("/routes/:recipient", routeHandler.Delete)
	}

	return router
}
