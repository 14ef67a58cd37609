package handlers

import (
	"fmt"
	"net/http"

	"phishguard-api/config"
	"phishguard-api/middleware"
	"phishguard-api/services"
	"phishguard-api/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Pipeline       Classifier
	Store          PredictionLister
	Cache          *services.CacheService
	Channel        string
	DefaultDataset string
	CORS           config.CORSConfig
}

// NewRouter wires every page, API route and middleware.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID(), middleware.SetupCORS(deps.CORS))
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = 8 << 20

	predictions := NewPredictionHandler(deps.Pipeline, deps.Store)
	preview := NewPreviewHandler(deps.DefaultDataset)

	router.GET("/", Page("first.html", "Home"))
	router.GET("/login", Page("login.html", "Login"))
	router.GET("/upload", Page("upload.html", "Upload"))
	router.GET("/index", Page("index.html", "Check a URL"))
	router.GET("/chart", Page("chart.html", "Chart"))

	router.GET("/preview", preview.ShowDefault)
	router.POST("/preview", preview.Upload)

	router.GET("/posts", predictions.ShowForm)
	router.POST("/posts", predictions.Submit)
	router.GET("/all_predictions", predictions.AllPredictions)

	api := router.Group("/api/v1")
	api.POST("/predictions", predictions.Create)
	api.GET("/predictions", predictions.List)

	router.GET("/ws/predictions", LiveWebSocket(deps.Cache, deps.Channel))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"message": "PhishGuard API is running",
			"redis":   deps.Cache.Available(),
		})
	})

	return router, nil
}
