package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/siteops-admin/internal/http/middleware"
	"github.com/nurpe/siteops-admin/internal/metrics"
)

type RouterOptions struct {
	Environment    string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Log            zerolog.Logger
}

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, opts RouterOptions) *gin.Engine {
	switch opts.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	registerOnce.Do(func() {
		if err := registerValidators(); err != nil {
			opts.Log.Error().Err(err).Msg("failed to register request validators")
		}
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(opts.Log))
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	handler.Register(router, authMiddleware)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
