package watermark

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/phambaophuc/pdf-watermark/internal/config"
	"github.com/phambaophuc/pdf-watermark/pkg/utils"
	"go.uber.org/zap"
)

// Watermarker owns the rendered watermark artifact and stamps documents
// with it. It is safe for concurrent use once Init has returned.
type Watermarker struct {
	cfg      config.WatermarkConfig
	renderer *Renderer
	merger   *Merger
	logger   *zap.Logger

	mu         sync.RWMutex
	ready      bool
	logoDigest string
}

func New(cfg config.WatermarkConfig, logger *zap.Logger) *Watermarker {
	placement := Placement{X: cfg.X, Y: cfg.Y, Width: cfg.Width, Height: cfg.Height}

	return &Watermarker{
		cfg:      cfg,
		renderer: NewRenderer(placement, cfg.PageSize, cfg.MaxLogoPixels),
		merger:   NewMerger(cfg.OnTop),
		logger:   logger,
	}
}

// Init decodes the base64 logo file and renders the watermark artifact.
func (w *Watermarker) Init() error {
	blob, err := LoadImageFile(w.cfg.LogoPath)
	if err != nil {
		return fmt.Errorf("load logo: %w", err)
	}

	return w.InitFromImage(blob)
}

// InitFromImage renders the artifact from raw image bytes.
func (w *Watermarker) InitFromImage(blob []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.renderer.Render(blob, w.cfg.ArtifactPath); err != nil {
		return fmt.Errorf("render watermark: %w", err)
	}

	w.ready = true
	w.logoDigest = utils.ContentHash(blob, "")
	w.logger.Info("Watermark artifact rendered",
		zap.String("artifact", w.cfg.ArtifactPath),
		zap.Stringer("placement", w.renderer.placement),
		zap.Int("logo_bytes", len(blob)),
		zap.String("logo_digest", w.logoDigest))
	return nil
}

// AddWatermark stamps every page of inputPath and writes the result to
// outputPath.
func (w *Watermarker) AddWatermark(inputPath, outputPath string) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if err := w.checkReady(); err != nil {
		return err
	}

	if err := w.merger.Merge(inputPath, outputPath, w.cfg.ArtifactPath); err != nil {
		return err
	}

	w.logger.Info("Watermark applied",
		zap.String("input", inputPath),
		zap.String("output", outputPath))
	return nil
}

// AddWatermarkBytes stamps an in-memory document.
func (w *Watermarker) AddWatermarkBytes(document []byte) ([]byte, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if err := w.checkReady(); err != nil {
		return nil, err
	}

	return w.merger.MergeBytes(document, w.cfg.ArtifactPath)
}

// Placement returns the logo rectangle used for rendering.
func (w *Watermarker) Placement() Placement {
	return w.renderer.placement
}

// checkReady accepts an artifact left on disk by an earlier run.
func (w *Watermarker) checkReady() error {
	if w.ready {
		return nil
	}
	if _, err := os.Stat(w.cfg.ArtifactPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotInitialized
		}
		return fmt.Errorf("%w: %v", ErrNotInitialized, err)
	}
	return nil
}

// Settings identifies everything that changes the stamped output besides
// the document itself. It is used for cache keys. Before Init only the
// logo path is known.
func (w *Watermarker) Settings() string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	logo := w.logoDigest
	if logo == "" {
		logo = w.cfg.LogoPath
	}
	return fmt.Sprintf("%s|%s|top=%t|%s", w.renderer.placement, w.cfg.PageSize, w.cfg.OnTop, logo)
}
