package watermark

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

// logoPNG returns a small RGBA logo with a transparent border.
func logoPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			alpha := uint8(255)
			if x < 2 || y < 2 || x >= w-2 || y >= h-2 {
				alpha = 0
			}
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: alpha})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func logoJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 20, G: uint8(x), B: uint8(y), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}))
	return buf.Bytes()
}

// writeSourcePDF writes a document whose page i is (400+10i) points wide, so
// page order can be read back from the page dimensions.
func writeSourcePDF(t *testing.T, dir string, pages int) string {
	t.Helper()

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	for i := 0; i < pages; i++ {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: sourcePageWidth(i), Ht: 700})
		pdf.SetFillColor(30*i, 90, 160)
		pdf.Rect(20, 20, 100, 50, "F")
	}

	path := filepath.Join(dir, "source.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

func sourcePageWidth(i int) float64 {
	return 400 + 10*float64(i)
}

func writeArtifact(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "logo_watermark.pdf")
	require.NoError(t, NewRenderer(DefaultPlacement, "Letter", 0).Render(logoPNG(t, 40, 20), path))
	return path
}

func writeLogoFile(t *testing.T, dir string, blob []byte) string {
	t.Helper()

	path := filepath.Join(dir, "logo_base64.txt")
	require.NoError(t, os.WriteFile(path, []byte(base64.StdEncoding.EncodeToString(blob)+"\n"), 0o644))
	return path
}

func mustDecode(t *testing.T, blob []byte) image.Image {
	t.Helper()

	img, _, err := decodeImage(blob)
	require.NoError(t, err)
	return img
}

// writeEmptyPDF writes a valid document whose page tree has no kids.
func writeEmptyPDF(t *testing.T, dir, name string) string {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}
