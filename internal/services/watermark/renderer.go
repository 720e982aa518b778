package watermark

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

const logoImageName = "logo"

// Rendered documents carry a fixed date so the same logo always produces the
// same bytes.
var renderDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Placement is the logo rectangle in PDF points, measured from the
// bottom-left corner of the page.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

var DefaultPlacement = Placement{X: 100, Y: 500, Width: 200, Height: 100}

func (p Placement) String() string {
	return fmt.Sprintf("%.2f,%.2f,%.2fx%.2f", p.X, p.Y, p.Width, p.Height)
}

// Renderer draws a logo onto a single-page PDF.
type Renderer struct {
	placement     Placement
	pageSize      string
	maxLogoPixels int
}

func NewRenderer(placement Placement, pageSize string, maxLogoPixels int) *Renderer {
	if pageSize == "" {
		pageSize = "Letter"
	}
	return &Renderer{
		placement:     placement,
		pageSize:      pageSize,
		maxLogoPixels: maxLogoPixels,
	}
}

// Render draws blob at the configured placement and writes the one-page
// document to artifactPath, replacing any previous artifact.
func (r *Renderer) Render(blob []byte, artifactPath string) error {
	data, err := r.RenderBytes(blob)
	if err != nil {
		return err
	}

	return writeFileAtomic(artifactPath, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// RenderBytes is Render without touching the filesystem.
func (r *Renderer) RenderBytes(blob []byte) ([]byte, error) {
	if r.placement.Width <= 0 || r.placement.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid logo size %.2fx%.2f", ErrRender, r.placement.Width, r.placement.Height)
	}

	img, format, err := decodeImage(blob)
	if err != nil {
		return nil, err
	}

	imageType, payload, err := r.prepareImage(blob, img, format)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", r.pageSize, "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(renderDate)
	pdf.SetModificationDate(renderDate)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	_, pageHeight := pdf.GetPageSize()
	top := pageHeight - r.placement.Y - r.placement.Height

	opts := fpdf.ImageOptions{ImageType: imageType, AllowNegativePosition: true}
	pdf.RegisterImageOptionsReader(logoImageName, opts, bytes.NewReader(payload))
	pdf.ImageOptions(logoImageName, r.placement.X, top, r.placement.Width, r.placement.Height, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return buf.Bytes(), nil
}

// prepareImage returns the bytes handed to the PDF writer. JPEGs are
// embedded untouched; everything else becomes an 8-bit PNG so its alpha
// channel ends up as the image's soft mask.
func (r *Renderer) prepareImage(blob []byte, img image.Image, format string) (string, []byte, error) {
	bounds := img.Bounds()
	oversized := r.maxLogoPixels > 0 && (bounds.Dx() > r.maxLogoPixels || bounds.Dy() > r.maxLogoPixels)

	if format == "jpeg" && !oversized {
		return "JPG", blob, nil
	}

	if oversized {
		img = imaging.Fit(img, r.maxLogoPixels, r.maxLogoPixels, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if format == "jpeg" {
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		return "JPG", buf.Bytes(), nil
	}

	if err := imaging.Encode(&buf, imaging.Clone(img), imaging.PNG); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return "PNG", buf.Bytes(), nil
}
