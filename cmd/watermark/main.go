package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phambaophuc/pdf-watermark/internal/config"
	"github.com/phambaophuc/pdf-watermark/internal/services/watermark"
	"go.uber.org/zap"
)

// go run ./cmd/watermark -in input.pdf -out output_watermarked.pdf
// go run ./cmd/watermark -in input.pdf -out out.pdf -logo assets/logo_base64.txt -artifact /tmp/wm.pdf -v

func main() {
	cfg := config.LoadWatermark()

	input := flag.String("in", "", "The PDF file to be watermarked.")
	output := flag.String("out", "output_watermarked.pdf", "The output PDF file name.")
	flag.StringVar(&cfg.LogoPath, "logo", cfg.LogoPath, "Text file holding the base64 encoded logo.")
	flag.StringVar(&cfg.ArtifactPath, "artifact", cfg.ArtifactPath, "Where the rendered watermark page is written.")
	flag.BoolVar(&cfg.OnTop, "ontop", cfg.OnTop, "Draw the logo over the page content instead of under it.")
	verbose := flag.Bool("v", false, "Enable debug output.")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: you must specify the PDF file to watermark with -in.")
		flag.Usage()
		os.Exit(1)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, *input, *output, logger); err != nil {
		logger.Fatal("Watermarking failed", zap.Error(err))
	}

	fmt.Printf("Successfully created watermarked PDF: %s\n", *output)
}

func run(cfg config.WatermarkConfig, input, output string, logger *zap.Logger) error {
	w := watermark.New(cfg, logger)
	if err := w.Init(); err != nil {
		return err
	}
	logger.Debug("Watermark ready",
		zap.String("artifact", cfg.ArtifactPath),
		zap.Stringer("placement", w.Placement()))

	if err := w.AddWatermark(input, output); err != nil {
		return err
	}

	pages, err := watermark.PageCount(output)
	if err != nil {
		return err
	}
	logger.Debug("Output written", zap.String("output", output), zap.Int("pages", pages))
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
