// Package imaging converts downloaded slide images into the baseline
// encodings both document assemblers accept.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"net/http"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrConversion is returned when a slide image cannot be decoded or
// re-encoded. Equivalent to a fetch failure for that slide: the request
// fails rather than dropping the page.
var ErrConversion = errors.New("image conversion failed")

const jpegQuality = 90

// Normalize returns data unchanged when it is already baseline JPEG or
// PNG. Anything else — the CDN serves WebP to clients that advertise
// it — is decoded, flattened onto a white background, and re-encoded
// as JPEG.
func Normalize(data []byte) ([]byte, error) {
	switch http.DetectContentType(data) {
	case "image/jpeg", "image/png":
		return data, nil
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrConversion, err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flattenOnWhite(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("%w: re-encode %s as jpeg: %v", ErrConversion, format, err)
	}
	return buf.Bytes(), nil
}

// flattenOnWhite composites any alpha or paletted source over white,
// matching what the slide viewer renders on.
func flattenOnWhite(img image.Image) *image.RGBA {
	b := img.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, b.Min, draw.Over)
	return flat
}
