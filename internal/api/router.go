package api

import (
	"context"
	"net/http"
	"time"

	"grocery-parser/internal/api/handlers/health"
	"grocery-parser/internal/api/handlers/recipes"
	"grocery-parser/internal/api/middleware"
	"grocery-parser/internal/core/fetch"
	"grocery-parser/internal/core/image"
	"grocery-parser/internal/core/llm"
	"grocery-parser/internal/core/pipeline"
	"grocery-parser/internal/infrastructure/config"
	"grocery-parser/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// parse requests cover a page fetch plus a possible relay call
	timeoutDuration = 120 * time.Second
	maxBodySize     = 1 << 20
)

// SetupRouter wires middleware, services and routes.
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	common.LogInfo("starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("llm_enabled", cfg.LLM.Enabled),
		zap.Bool("gate_enabled", cfg.Gate.Enabled),
	)

	var extractor llm.Extractor
	if cfg.LLM.Enabled {
		extractor = llm.NewRelayClient(cfg.LLM)
	}

	fetcher := fetch.NewFetcher(cfg.Fetch)
	pipelineSvc := pipeline.NewService(cfg, fetcher, extractor)
	resolver := image.NewResolver(cfg.Image)
	recipesHandler := recipes.NewHandler(pipelineSvc, resolver)

	// request deadline plus config injection for the health handler
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/parse", recipesHandler.HandleParse)
			recipeGroup.GET("/stats", recipesHandler.HandleStats)
			recipeGroup.POST("/stats/reset", recipesHandler.HandleResetStats)
			recipeGroup.DELETE("/cache", recipesHandler.HandleClearCache)
		}

		ingredientGroup := api.Group("/ingredients")
		{
			ingredientGroup.GET("/image", recipesHandler.HandleIngredientImage)
			ingredientGroup.POST("/images", recipesHandler.HandlePrefetchImages)
		}
	}

	common.LogInfo("router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
