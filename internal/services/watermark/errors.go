// Package watermark renders a logo onto a single-page PDF and stamps that
// page onto every page of other PDF documents.
package watermark

import "errors"

var (
	ErrDecode           = errors.New("cannot decode watermark image")
	ErrRender           = errors.New("cannot render watermark document")
	ErrNotFound         = errors.New("document not found")
	ErrCorruptDocument  = errors.New("corrupt document")
	ErrMissingWatermark = errors.New("watermark document has no pages")
	ErrWrite            = errors.New("cannot write document")
	ErrNotInitialized   = errors.New("watermarker not initialized")
)
