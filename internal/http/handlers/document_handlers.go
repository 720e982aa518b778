package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phambaophuc/pdf-watermark/internal/config"
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/internal/services/processor"
	"github.com/phambaophuc/pdf-watermark/internal/services/storage"
	"go.uber.org/zap"
)

const documentParamKey = "document"

// Storage is the part of the storage service the handlers talk to directly.
type Storage interface {
	GetJob(ctx context.Context, id string) (*models.WatermarkJob, error)
	Delete(ctx context.Context, path string) error
	CleanupCache(ctx context.Context) error
	GetCacheStats(ctx context.Context) (map[string]interface{}, error)
	HealthCheck(ctx context.Context) map[string]string
}

type JobQueue interface {
	Submit(ctx context.Context, documentPath string) (*models.WatermarkJob, error)
	GetQueueStats() (map[string]interface{}, error)
	HealthCheck() string
}

type DocumentHandler struct {
	processor *processor.DocumentProcessor
	storage   Storage
	queue     JobQueue
	logger    *zap.Logger
	config    *config.Config
}

// NewDocumentHandler wires the handler. queue may be nil when RabbitMQ is
// unavailable; job endpoints then answer 503.
func NewDocumentHandler(
	processor *processor.DocumentProcessor,
	storage Storage,
	queue JobQueue,
	logger *zap.Logger,
	config *config.Config,
) *DocumentHandler {
	return &DocumentHandler{
		processor: processor,
		storage:   storage,
		queue:     queue,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

func (h *DocumentHandler) WatermarkDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile(documentParamKey)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No document file provided")
		return
	}
	defer file.Close()

	data, err := h.readUpload(file)
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		h.respondError(c, http.StatusBadRequest, "Failed to read document")
		return
	}

	if err := h.processor.ValidateDocument(data, h.config.Storage.MaxFileSize); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid document: "+err.Error())
		return
	}

	result, err := h.processor.Process(c.Request.Context(), uuid.New().String(), header.Filename, data)
	if err != nil {
		h.logger.Error("Processing failed",
			zap.String("filename", header.Filename),
			zap.Error(err))
		h.respondError(c, statusForError(err), "Failed to watermark document: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    result,
	})
}

func (h *DocumentHandler) SubmitJob(c *gin.Context) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Job queue is not available")
		return
	}

	var req models.WatermarkJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid job request: "+err.Error())
		return
	}

	job, err := h.queue.Submit(c.Request.Context(), req.DocumentPath)
	if err != nil {
		h.logger.Error("Failed to submit job", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to submit job")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

func (h *DocumentHandler) GetJob(c *gin.Context) {
	job, err := h.storage.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			h.respondError(c, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.Error("Failed to load job", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load job")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		h.respondError(c, http.StatusBadRequest, "Document path is required")
		return
	}

	if err := h.storage.Delete(c.Request.Context(), path); err != nil {
		h.logger.Error("Failed to delete document", zap.String("path", path), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    gin.H{"deleted": path},
	})
}

// === ADMIN ENDPOINTS ===

func (h *DocumentHandler) GetStats(c *gin.Context) {
	stats := gin.H{}

	cacheStats, err := h.storage.GetCacheStats(c.Request.Context())
	if err != nil {
		h.logger.Warn("Failed to read cache stats", zap.Error(err))
		stats["cache"] = gin.H{"error": err.Error()}
	} else {
		stats["cache"] = cacheStats
	}

	if h.queue != nil {
		queueStats, err := h.queue.GetQueueStats()
		if err != nil {
			h.logger.Warn("Failed to read queue stats", zap.Error(err))
			stats["queue"] = gin.H{"error": err.Error()}
		} else {
			stats["queue"] = queueStats
		}
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}

// CleanupCache drops cached results that no longer carry a TTL.
func (h *DocumentHandler) CleanupCache(c *gin.Context) {
	if err := h.storage.CleanupCache(c.Request.Context()); err != nil {
		h.logger.Error("Cache cleanup failed", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to clean up cache")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true})
}

// HealthCheck
func (h *DocumentHandler) HealthCheck(c *gin.Context) {
	services := h.storage.HealthCheck(c.Request.Context())
	if h.queue != nil {
		services["rabbitmq"] = h.queue.HealthCheck()
	} else {
		services["rabbitmq"] = "not configured"
	}

	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}
