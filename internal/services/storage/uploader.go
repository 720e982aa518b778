package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phambaophuc/pdf-watermark/pkg/utils"
	storage_go "github.com/supabase-community/storage-go"
)

// SaveDocument uploads a watermarked PDF and returns its storage key and
// public URL.
func (s *StorageService) SaveDocument(ctx context.Context, data []byte, filename string) (string, string, error) {
	return s.Upload(ctx, bytes.NewBuffer(data), filename, utils.PDFContentType)
}

// Upload uploads file to Supabase Storage
func (s *StorageService) Upload(ctx context.Context, buffer *bytes.Buffer, filename, contentType string) (string, string, error) {
	key := utils.GenerateStorageKey(filename)

	_, err := s.sbClient.UploadFile(s.bucket, key, bytes.NewReader(buffer.Bytes()), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.sbClient.GetPublicUrl(s.bucket, key)
	return key, publicURL.SignedURL, nil
}

// Delete removes file from Supabase Storage
func (s *StorageService) Delete(ctx context.Context, path string) error {
	_, err := s.sbClient.RemoveFile(s.bucket, []string{path})
	return err
}
