package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/internal/services/watermark"
)

// === FILE OPERATIONS ===

// readUpload reads at most one byte past the size limit so oversized files
// are still rejected by ValidateDocument.
func (h *DocumentHandler) readUpload(file multipart.File) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, h.config.Storage.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// === RESPONSE HANDLING ===

func (h *DocumentHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, watermark.ErrNotInitialized):
		return http.StatusServiceUnavailable
	case errors.Is(err, watermark.ErrNotFound):
		return http.StatusNotFound
	case watermark.IsDocumentError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// === UTILITY METHODS ===

func (h *DocumentHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
