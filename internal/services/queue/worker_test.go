package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/internal/services/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStore struct {
	documents map[string][]byte
	history   []string
	jobs      map[string]models.WatermarkJob
	cache     map[string]*models.WatermarkedDocument
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		documents: make(map[string][]byte),
		jobs:      make(map[string]models.WatermarkJob),
		cache:     make(map[string]*models.WatermarkedDocument),
	}
}

func (m *memoryStore) Download(_ context.Context, path string) ([]byte, error) {
	data, ok := m.documents[path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (m *memoryStore) SaveJob(_ context.Context, job *models.WatermarkJob) error {
	m.history = append(m.history, job.Status)
	m.jobs[job.ID] = *job
	return nil
}

func (m *memoryStore) SaveDocument(_ context.Context, _ []byte, filename string) (string, string, error) {
	return "watermarked/" + filename, "https://cdn.test/" + filename, nil
}

func (m *memoryStore) GetCachedDocument(_ context.Context, key string) (*models.WatermarkedDocument, error) {
	return m.cache[key], nil
}

func (m *memoryStore) SetCachedDocument(_ context.Context, key string, doc *models.WatermarkedDocument) error {
	m.cache[key] = doc
	return nil
}

func (m *memoryStore) GenerateCacheKey(document []byte, settings string) string {
	return settings + string(rune(len(document)))
}

type passthroughStamper struct{}

func (passthroughStamper) AddWatermarkBytes(document []byte) ([]byte, error) { return document, nil }
func (passthroughStamper) Settings() string                                 { return "passthrough" }

func onePagePDF(t *testing.T) []byte {
	t.Helper()

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func newTestQueue(store *memoryStore) *QueueService {
	logger := zap.NewNop()
	return &QueueService{
		logger:    logger,
		queueName: defaultQueueName,
		processor: processor.NewDocumentProcessor(passthroughStamper{}, store, logger),
		store:     store,
	}
}

func jobBody(t *testing.T, job models.WatermarkJob) []byte {
	t.Helper()

	body, err := json.Marshal(job)
	require.NoError(t, err)
	return body
}

func TestHandleJob(t *testing.T) {
	ctx := context.Background()

	t.Run("completes", func(t *testing.T) {
		store := newMemoryStore()
		store.documents["incoming/report.pdf"] = onePagePDF(t)
		q := newTestQueue(store)

		err := q.handleJob(ctx, jobBody(t, models.WatermarkJob{ID: "j1", DocumentPath: "incoming/report.pdf"}), 1)
		require.NoError(t, err)

		job := store.jobs["j1"]
		assert.Equal(t, models.StatusCompleted, job.Status)
		require.NotNil(t, job.Result)
		assert.Equal(t, 1, job.Result.Pages)
		assert.Equal(t, "report.pdf", job.Result.OriginalName)
		assert.Equal(t, []string{models.StatusProcessing, models.StatusCompleted}, store.history)
	})

	t.Run("records failures", func(t *testing.T) {
		store := newMemoryStore()
		q := newTestQueue(store)

		err := q.handleJob(ctx, jobBody(t, models.WatermarkJob{ID: "j2", DocumentPath: "incoming/missing.pdf"}), 1)
		require.NoError(t, err)

		job := store.jobs["j2"]
		assert.Equal(t, models.StatusFailed, job.Status)
		assert.Contains(t, job.Error, "failed to download document")
	})

	t.Run("rejects non-pdf content", func(t *testing.T) {
		store := newMemoryStore()
		store.documents["incoming/logo.png"] = []byte("\x89PNG\r\n\x1a\n")
		q := newTestQueue(store)

		require.NoError(t, q.handleJob(ctx, jobBody(t, models.WatermarkJob{ID: "j3", DocumentPath: "incoming/logo.png"}), 1))
		assert.Equal(t, models.StatusFailed, store.jobs["j3"].Status)
	})

	t.Run("malformed message", func(t *testing.T) {
		q := newTestQueue(newMemoryStore())

		assert.Error(t, q.handleJob(ctx, []byte("{not json"), 1))
		assert.Error(t, q.handleJob(ctx, []byte(`{"id":"j4"}`), 1))
	})
}

func TestHealthCheckWithoutConnection(t *testing.T) {
	q := newTestQueue(newMemoryStore())
	assert.Equal(t, "unhealthy: connection closed", q.HealthCheck())
}
