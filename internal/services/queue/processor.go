package queue

import (
	"context"
	"fmt"
	"path"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/pkg/utils"
)

func (q *QueueService) processJob(ctx context.Context, job *models.WatermarkJob) (*models.WatermarkedDocument, error) {
	data, err := q.store.Download(ctx, job.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to download document: %w", err)
	}

	if !utils.IsPDF(data) {
		return nil, fmt.Errorf("%s is not a PDF document", job.DocumentPath)
	}

	return q.processor.Process(ctx, job.ID, path.Base(job.DocumentPath), data)
}
