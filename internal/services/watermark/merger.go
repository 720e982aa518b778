package watermark

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// The overlay page keeps its own size and coordinate system: anchored at the
// lower left corner, no offset, no rotation, fully opaque.
const overlayDescription = "scalefactor:1 abs, position:bl, offset:0 0, rotation:0, opacity:1"

func init() {
	api.DisableConfigDir()
}

// Merger composites the first page of a watermark document onto every page
// of a source document.
type Merger struct {
	onTop bool
}

// NewMerger returns a Merger. With onTop the overlay is drawn after the
// page content (a stamp), otherwise underneath it.
func NewMerger(onTop bool) *Merger {
	return &Merger{onTop: onTop}
}

// Merge writes sourcePath with the overlay applied to outputPath. An existing
// file at outputPath is replaced only when the whole document was written.
func (m *Merger) Merge(sourcePath, outputPath, watermarkPath string) error {
	if err := checkOverlay(watermarkPath); err != nil {
		return err
	}

	src, err := openDocument(sourcePath)
	if err != nil {
		return err
	}
	defer src.Close()

	return writeFileAtomic(outputPath, func(w io.Writer) error {
		return m.stamp(src, w, watermarkPath)
	})
}

// MergeBytes applies the overlay to an in-memory document.
func (m *Merger) MergeBytes(source []byte, watermarkPath string) ([]byte, error) {
	if err := checkOverlay(watermarkPath); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := m.stamp(bytes.NewReader(source), &buf, watermarkPath); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Merger) stamp(rs io.ReadSeeker, w io.Writer, watermarkPath string) error {
	ctx, err := api.ReadAndValidate(rs, stampConfiguration())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	// pdfcpu does not write empty page trees. The validated source is
	// already the zero-page result.
	if ctx.PageCount == 0 {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind source: %w", err)
		}
		_, err := io.Copy(w, rs)
		return err
	}

	if err := api.OptimizeContext(ctx); err != nil {
		return fmt.Errorf("%w: optimize: %v", ErrCorruptDocument, err)
	}

	wm, err := api.PDFWatermark(watermarkPath, overlayDescription, m.onTop, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("%w: watermark %s: %v", ErrCorruptDocument, watermarkPath, err)
	}

	if err := api.WatermarkContext(ctx, nil, wm); err != nil {
		return fmt.Errorf("%w: apply watermark: %v", ErrCorruptDocument, err)
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return fmt.Errorf("%w: write document: %v", ErrCorruptDocument, err)
	}

	out, err := pinDocumentIdentity(ctx, buf.Bytes())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	_, err = w.Write(out)
	return err
}

// pinDocumentIdentity swaps the write time pdfcpu puts into the info
// dictionary, and the file ID it derives from it, for fixed values of the
// same length. Xref offsets stay valid and equal inputs give equal bytes.
func pinDocumentIdentity(ctx *model.Context, data []byte) ([]byte, error) {
	if ctx.Info != nil {
		d, err := ctx.DereferenceDict(*ctx.Info)
		if err != nil {
			return nil, err
		}

		pinned := types.StringLiteral(types.DateString(renderDate))
		for _, key := range []string{"CreationDate", "ModDate"} {
			written, ok := d[key].(types.StringLiteral)
			if !ok || len(written) != len(pinned) {
				continue
			}
			data = bytes.ReplaceAll(data, []byte(written.PDFString()), []byte(pinned.PDFString()))
			d[key] = pinned
		}
	}

	if len(ctx.ID) != 2 {
		return data, nil
	}
	fid, ok := ctx.ID[1].(types.HexLiteral)
	if !ok {
		return data, nil
	}

	written := []byte(fid.PDFString())
	sum := md5.Sum(bytes.ReplaceAll(data, written, nil))
	pinned := types.HexLiteral(hex.EncodeToString(sum[:]))
	if len(pinned) != len(fid) {
		return data, nil
	}

	return bytes.ReplaceAll(data, written, []byte(pinned.PDFString())), nil
}

// PageCount reports how many pages the document at path has.
func PageCount(path string) (int, error) {
	f, err := openDocument(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	ctx, err := readDocument(f)
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

// PageCountBytes is PageCount for an in-memory document.
func PageCountBytes(data []byte) (int, error) {
	ctx, err := readDocument(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

func checkOverlay(watermarkPath string) error {
	f, err := openDocument(watermarkPath)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, err := readDocument(f)
	if err != nil {
		return err
	}
	return requireOverlayPage(ctx)
}

func requireOverlayPage(ctx *model.Context) error {
	if ctx == nil || ctx.XRefTable == nil || ctx.PageCount < 1 {
		return ErrMissingWatermark
	}
	return nil
}

func readDocument(rs io.ReadSeeker) (*model.Context, error) {
	ctx, err := api.ReadContext(rs, newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return ctx, nil
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// stampConfiguration writes plain objects and a classic xref table so the
// info dictionary and trailer stay uncompressed.
func stampConfiguration() *model.Configuration {
	conf := newConfiguration()
	conf.Cmd = model.ADDWATERMARKS
	conf.OptimizeDuplicateContentStreams = false
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}

// IsDocumentError reports whether err was caused by the caller's input
// rather than by the environment.
func IsDocumentError(err error) bool {
	return errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrCorruptDocument) ||
		errors.Is(err, ErrMissingWatermark)
}
