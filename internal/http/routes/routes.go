package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/pdf-watermark/internal/http/handlers"
	"github.com/phambaophuc/pdf-watermark/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	documentHandler *handlers.DocumentHandler
	logger          *zap.Logger
}

func NewRouter(
	documentHandler *handlers.DocumentHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		documentHandler: documentHandler,
		logger:          logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.documentHandler.HealthCheck)
		v1.GET("/stats", r.documentHandler.GetStats)
		v1.DELETE("/cache", r.documentHandler.CleanupCache)

		documents := v1.Group("/documents")
		{
			documents.POST("/watermark",
				middleware.ValidateContentType("multipart/form-data"),
				r.documentHandler.WatermarkDocument)
			documents.POST("/jobs",
				middleware.ValidateContentType("application/json"),
				r.documentHandler.SubmitJob)
			documents.GET("/jobs/:id", r.documentHandler.GetJob)
			documents.DELETE("/files/*path", r.documentHandler.DeleteDocument)
		}
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "PDF watermarking is running",
		})
	})

	return router
}
