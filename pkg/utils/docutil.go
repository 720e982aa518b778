package utils

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const PDFContentType = "application/pdf"

var pdfMagic = []byte("%PDF-")

// IsPDF checks the magic bytes rather than trusting the upload's headers.
// Some writers put a few bytes of junk before the header, so the first
// kilobyte is searched.
func IsPDF(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, pdfMagic) || http.DetectContentType(data) == PDFContentType
}

// GenerateFilename generates the output name for a watermarked document
func GenerateFilename(originalFilename string) string {
	name := strings.TrimSuffix(filepath.Base(originalFilename), filepath.Ext(originalFilename))
	if name == "" || name == "." || name == "/" {
		name = "document"
	}
	return name + "_watermarked.pdf"
}

func GenerateStorageKey(filename string) string {
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	timestamp := time.Now().Unix()
	uuid := uuid.New().String()[:8]

	return fmt.Sprintf("watermarked/%s_%d_%s%s", name, timestamp, uuid, ext)
}

// ContentHash fingerprints a document together with the watermark settings
// it was stamped with.
func ContentHash(data []byte, settings string) string {
	hash := md5.New()
	hash.Write(data)
	hash.Write([]byte(settings))
	return fmt.Sprintf("%x", hash.Sum(nil))
}
