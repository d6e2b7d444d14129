package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/wearly/shopagent-backend/internal/http/handlers"
	httpMW "github.com/wearly/shopagent-backend/internal/http/middleware"
	"github.com/wearly/shopagent-backend/internal/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AllowOrigins []string

	StatusHandler    *httpH.StatusHandler
	HealthHandler    *httpH.HealthHandler
	SearchHandler    *httpH.SearchHandler
	TrackHandler     *httpH.TrackHandler
	RecommendHandler *httpH.RecommendHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestID())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowOrigins))

	if cfg.StatusHandler != nil {
		r.GET("/", cfg.StatusHandler.Status)
	}
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.SearchHandler != nil {
			api.POST("/search", cfg.SearchHandler.Search)
		}
		if cfg.TrackHandler != nil {
			api.POST("/track", cfg.TrackHandler.Track)
		}
		if cfg.RecommendHandler != nil {
			api.GET("/recommendations/:user_id", cfg.RecommendHandler.Recommendations)
		}
	}

	return r
}
