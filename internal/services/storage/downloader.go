package storage

import (
	"context"
	"fmt"
)

func (s *StorageService) Download(ctx context.Context, path string) ([]byte, error) {
	data, err := s.sbClient.DownloadFile(s.bucket, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s from supabase: %w", path, err)
	}
	return data, nil
}
