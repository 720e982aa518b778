package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n%âãÏÓ\n1 0 obj")))
	assert.True(t, IsPDF([]byte("\x00\x00junk%PDF-1.4\n")))
	assert.False(t, IsPDF([]byte("\x89PNG\r\n\x1a\n")))
	assert.False(t, IsPDF(nil))
}

func TestGenerateFilename(t *testing.T) {
	assert.Equal(t, "report_watermarked.pdf", GenerateFilename("report.pdf"))
	assert.Equal(t, "scan_watermarked.pdf", GenerateFilename("uploads/scan.PDF"))
	assert.Equal(t, "document_watermarked.pdf", GenerateFilename(""))
}

func TestGenerateStorageKey(t *testing.T) {
	key := GenerateStorageKey("report_watermarked.pdf")

	assert.True(t, strings.HasPrefix(key, "watermarked/report_watermarked_"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotEqual(t, key, GenerateStorageKey("report_watermarked.pdf"))
}

func TestContentHash(t *testing.T) {
	doc := []byte("%PDF-1.4 body")

	assert.Equal(t, ContentHash(doc, "a"), ContentHash(doc, "a"))
	assert.NotEqual(t, ContentHash(doc, "a"), ContentHash(doc, "b"))
	assert.Len(t, ContentHash(doc, ""), 32)
}
