package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/pkg/utils"
	"github.com/redis/go-redis/v9"
)

const cachePrefix = "pdf_cache:"

func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// GetCachedDocument returns the stored result for cacheKey, or nil on a miss.
func (s *StorageService) GetCachedDocument(ctx context.Context, cacheKey string) (*models.WatermarkedDocument, error) {
	data, err := s.GetFromCache(ctx, cacheKey)
	if err != nil || data == nil {
		return nil, err
	}

	var doc models.WatermarkedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid cached document: %w", err)
	}
	return &doc, nil
}

func (s *StorageService) SetCachedDocument(ctx context.Context, cacheKey string, doc *models.WatermarkedDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return s.SetCache(ctx, cacheKey, data)
}

// GenerateCacheKey keys a result by document content and watermark settings.
func (s *StorageService) GenerateCacheKey(document []byte, settings string) string {
	return cachePrefix + utils.ContentHash(document, settings)
}

func (s *StorageService) CleanupCache(ctx context.Context) error {
	keys, err := s.redisClient.Keys(ctx, cachePrefix+"*").Result()
	if err != nil {
		return err
	}

	for _, key := range keys {
		ttl := s.redisClient.TTL(ctx, key).Val()
		if ttl <= 0 {
			s.redisClient.Del(ctx, key)
		}
	}

	return nil
}

func (s *StorageService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	info, err := s.redisClient.Info(ctx, "memory").Result()
	if err != nil {
		return nil, err
	}

	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"db_keys": dbSize,
		"info":    info,
	}

	return stats, nil
}
