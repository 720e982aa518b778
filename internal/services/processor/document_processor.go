package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/internal/services/watermark"
	"github.com/phambaophuc/pdf-watermark/pkg/utils"
	"go.uber.org/zap"
)

type Stamper interface {
	AddWatermarkBytes(document []byte) ([]byte, error)
	Settings() string
}

type DocumentStore interface {
	SaveDocument(ctx context.Context, data []byte, filename string) (string, string, error)
	GetCachedDocument(ctx context.Context, cacheKey string) (*models.WatermarkedDocument, error)
	SetCachedDocument(ctx context.Context, cacheKey string, doc *models.WatermarkedDocument) error
	GenerateCacheKey(document []byte, settings string) string
}

// DocumentProcessor stamps a document, stores the result and remembers it
// so the same upload is not processed twice.
type DocumentProcessor struct {
	stamper Stamper
	store   DocumentStore
	logger  *zap.Logger
}

func NewDocumentProcessor(stamper Stamper, store DocumentStore, logger *zap.Logger) *DocumentProcessor {
	return &DocumentProcessor{
		stamper: stamper,
		store:   store,
		logger:  logger,
	}
}

func (p *DocumentProcessor) Process(ctx context.Context, id, originalName string, document []byte) (*models.WatermarkedDocument, error) {
	cacheKey := p.store.GenerateCacheKey(document, p.stamper.Settings())

	cached, err := p.store.GetCachedDocument(ctx, cacheKey)
	if err != nil {
		p.logger.Warn("Failed to read cache", zap.String("cache_key", cacheKey), zap.Error(err))
	} else if cached != nil {
		p.logger.Info("Cache hit", zap.String("cache_key", cacheKey))
		result := *cached
		result.ID = id
		result.OriginalName = originalName
		return &result, nil
	}

	stamped, err := p.stamper.AddWatermarkBytes(document)
	if err != nil {
		return nil, fmt.Errorf("failed to watermark document: %w", err)
	}

	pages, err := watermark.PageCountBytes(stamped)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect watermarked document: %w", err)
	}

	key, url, err := p.store.SaveDocument(ctx, stamped, utils.GenerateFilename(originalName))
	if err != nil {
		return nil, fmt.Errorf("failed to save watermarked document: %w", err)
	}

	result := &models.WatermarkedDocument{
		ID:           id,
		OriginalName: originalName,
		URL:          url,
		StoragePath:  key,
		Pages:        pages,
		FileSize:     int64(len(stamped)),
		ProcessedAt:  time.Now(),
	}

	if err := p.store.SetCachedDocument(ctx, cacheKey, result); err != nil {
		p.logger.Warn("Failed to cache result", zap.String("cache_key", cacheKey), zap.Error(err))
	}

	return result, nil
}
