// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imdes/console/controller"
	"github.com/imdes/console/middleware"
	"github.com/imdes/console/session"
)

func SetupRouter(
	controllers *controller.Controllers,
	sessionStore *session.Store,
	limiter middleware.Limiter,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RequestID())
	if limiter != nil {
		router.Use(middleware.RateLimiter(limiter, rateLimitRequests, rateLimitDuration))
	}

	api := router.Group("/api/v1")
	private := api.Group("/")
	private.Use(middleware.SessionRequired(sessionStore))

	controllers.Auth.RegisterRoutes(api, private)
	controllers.Requests.RegisterRoutes(private)
	controllers.Audit.RegisterRoutes(private)
	controllers.Reference.RegisterRoutes(private)
	controllers.Dashboard.RegisterRoutes(private)

	return router
}
