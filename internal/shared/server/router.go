package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insurance-assistant/internal/assist"
	"insurance-assistant/internal/extract"
	"insurance-assistant/internal/invocations"
	"insurance-assistant/internal/shared/config"
	"insurance-assistant/internal/shared/metrics"
	"insurance-assistant/internal/shared/server/middleware"
	"insurance-assistant/internal/shared/server/respond"
)

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config            config.Config
	AssistHandler     *assist.Handler
	InvocationHandler *invocations.Handler
	ExtractHandler    *extract.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"ok":               true,
			"geminiConfigured": deps.Config.HasGeminiKey(),
		})
	})
	if deps.AssistHandler != nil {
		deps.AssistHandler.RegisterRoutes(api)
	}
	if deps.InvocationHandler != nil {
		deps.InvocationHandler.RegisterRoutes(api)
	}
	if deps.ExtractHandler != nil {
		deps.ExtractHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
