package processor

import (
	"fmt"

	"github.com/phambaophuc/pdf-watermark/pkg/utils"
)

func (p *DocumentProcessor) ValidateDocument(data []byte, maxSize int64) error {
	if size := int64(len(data)); size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed size %d", size, maxSize)
	}

	if len(data) == 0 {
		return fmt.Errorf("empty document")
	}

	if !utils.IsPDF(data) {
		return fmt.Errorf("invalid document format: not a PDF")
	}

	return nil
}
