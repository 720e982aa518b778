package watermark

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"strings"

	// Register decoders for every logo format we accept.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// LoadImageFile reads a text file holding a base64 encoded image and returns
// the raw image bytes.
func LoadImageFile(path string) ([]byte, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return DecodeBase64Image(string(text))
}

// DecodeBase64Image decodes base64 text (optionally a data URL) into image
// bytes. Line breaks and surrounding whitespace are ignored.
func DecodeBase64Image(text string) ([]byte, error) {
	raw := stripWhitespace(stripDataPrefix(strings.TrimSpace(text)))
	if raw == "" {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrDecode, err)
	}

	return data, nil
}

// decodeImage checks that blob is an image we can draw.
func decodeImage(blob []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, format, nil
}

func stripDataPrefix(input string) string {
	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "data:") {
		if idx := strings.Index(input, ","); idx != -1 {
			return input[idx+1:]
		}
	}
	return input
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
}
