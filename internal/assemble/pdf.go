package assemble

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDF produces one page per image, each page sized to its image's pixel
// dimensions (1px = 1pt) so aspect ratio is preserved exactly. JPEG and
// PNG payloads are embedded as-is, never re-compressed. Same input
// sequence, same bytes out.
func PDF(images [][]byte) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images", ErrAssembly)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: 612, Ht: 792}})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for i, data := range images {
		w, h, format, err := imageInfo(data)
		if err != nil {
			return nil, err
		}
		opts := gofpdf.ImageOptions{ImageType: pdfImageType(format)}
		alias := fmt.Sprintf("slide-%d", i)
		pdf.RegisterImageOptionsReader(alias, opts, bytes.NewReader(data))
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: float64(w), Ht: float64(h)})
		pdf.ImageOptions(alias, 0, 0, float64(w), float64(h), false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}
	return buf.Bytes(), nil
}

func pdfImageType(format string) string {
	if format == "png" {
		return "PNG"
	}
	return "JPG"
}
