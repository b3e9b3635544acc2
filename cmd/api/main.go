package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hybrid-bess-sim/internal/api/handlers"
	"hybrid-bess-sim/internal/api/middleware"
	"hybrid-bess-sim/internal/data"
)

func main() {
	var log *zap.Logger
	var err error
	if os.Getenv("API_ENV") == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	cacheTTL := time.Hour
	if ttlStr := os.Getenv("RESULT_CACHE_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			cacheTTL = parsed
		}
	}
	cache := data.NewResultCache(cacheTTL)

	simulateHandler := handlers.NewSimulateHandler(cache)
	analyzeHandler := handlers.NewAnalyzeHandler()
	presetHandler := handlers.NewPresetHandler(log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulate)
		api.POST("/compare", simulateHandler.RunCompare)
		api.POST("/analyze", analyzeHandler.Analyze)
		api.GET("/regions", handlers.ListRegions)
		api.GET("/presets", presetHandler.ListPresets)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
