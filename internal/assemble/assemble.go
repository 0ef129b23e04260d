// Package assemble builds the downloadable document out of an ordered
// slide-image sequence, one page or slide per image.
package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"
)

// ErrAssembly indicates the output document could not be produced.
// Given upstream guarantees this points at an internal invariant
// violation, not at the source page.
var ErrAssembly = errors.New("document assembly failed")

// Format selects the output document variant.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPPTX Format = "pptx"
)

// ContentType reports the MIME type the HTTP layer serves.
func (f Format) ContentType() string {
	if f == FormatPPTX {
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	}
	return "application/pdf"
}

// Ext is the filename extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Document is the terminal artifact handed back to the HTTP layer.
type Document struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Build assembles images into the requested format and wraps the result
// with its content type and a filename derived from title.
func Build(format Format, images [][]byte, title string) (Document, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatPPTX:
		data, err = PPTX(images, title)
	default:
		data, err = PDF(images)
	}
	if err != nil {
		return Document{}, err
	}
	return Document{
		Data:        data,
		ContentType: format.ContentType(),
		Filename:    SafeName(title) + format.Ext(),
	}, nil
}

// imageInfo reports pixel dimensions and the baseline encoding of one
// normalized image.
func imageInfo(data []byte) (w, h int, format string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: unreadable image: %v", ErrAssembly, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, "", fmt.Errorf("%w: degenerate image %dx%d", ErrAssembly, cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, format, nil
}
