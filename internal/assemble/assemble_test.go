package assemble

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func jpegImage(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func imagesN(t *testing.T, n int) [][]byte {
	t.Helper()
	images := make([][]byte, n)
	for i := range images {
		images[i] = jpegImage(t, 160, 120)
	}
	return images
}

func TestPDF_PageCountMatchesImageCount(t *testing.T) {
	for _, n := range []int{1, 5, 50} {
		out, err := PDF(imagesN(t, n))
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Fatalf("n=%d: output is not a PDF", n)
		}
		want := fmt.Sprintf("/Count %d", n)
		if !strings.Contains(string(out), want) {
			t.Fatalf("n=%d: page tree %q not found", n, want)
		}
	}
}

func TestPDF_MixedEncodings(t *testing.T) {
	out, err := PDF([][]byte{jpegImage(t, 100, 80), pngImage(t, 80, 100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
}

func TestPDF_ZeroImages(t *testing.T) {
	if _, err := PDF(nil); !errors.Is(err, ErrAssembly) {
		t.Fatalf("expected ErrAssembly, got %v", err)
	}
}

func TestPDF_GarbageImage(t *testing.T) {
	if _, err := PDF([][]byte{[]byte("not an image")}); !errors.Is(err, ErrAssembly) {
		t.Fatalf("expected ErrAssembly, got %v", err)
	}
}

func pptxParts(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	parts := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatal(err)
		}
		rc.Close()
		parts[f.Name] = buf.Bytes()
	}
	return parts
}

func TestPPTX_SlideCountMatchesImageCount(t *testing.T) {
	for _, n := range []int{1, 5, 50} {
		out, err := PPTX(imagesN(t, n), "Deck")
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		parts := pptxParts(t, out)
		for i := 1; i <= n; i++ {
			if _, ok := parts[fmt.Sprintf("ppt/slides/slide%d.xml", i)]; !ok {
				t.Fatalf("n=%d: slide part %d missing", n, i)
			}
			if _, ok := parts[fmt.Sprintf("ppt/media/image%d.jpg", i)]; !ok {
				t.Fatalf("n=%d: media part %d missing", n, i)
			}
		}
		if _, ok := parts[fmt.Sprintf("ppt/slides/slide%d.xml", n+1)]; ok {
			t.Fatalf("n=%d: extra slide part present", n)
		}
		pres := string(parts["ppt/presentation.xml"])
		if got := strings.Count(pres, "<p:sldId "); got != n {
			t.Fatalf("n=%d: presentation lists %d slides", n, got)
		}
		for _, required := range []string{
			"[Content_Types].xml",
			"_rels/.rels",
			"ppt/_rels/presentation.xml.rels",
			"ppt/slideMasters/slideMaster1.xml",
			"ppt/slideLayouts/slideLayout1.xml",
			"ppt/theme/theme1.xml",
		} {
			if _, ok := parts[required]; !ok {
				t.Fatalf("n=%d: required part %s missing", n, required)
			}
		}
	}
}

func TestPPTX_MediaPreservedByteForByte(t *testing.T) {
	img := jpegImage(t, 320, 240)
	out, err := PPTX([][]byte{img}, "Deck")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := pptxParts(t, out)
	if !bytes.Equal(parts["ppt/media/image1.jpg"], img) {
		t.Fatal("embedded image was re-encoded")
	}
}

func TestPPTX_Deterministic(t *testing.T) {
	images := imagesN(t, 3)
	first, err := PPTX(images, "Deck")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := PPTX(images, "Deck")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("identical input produced different archives")
	}
}

func TestPPTX_ZeroImages(t *testing.T) {
	if _, err := PPTX(nil, "Deck"); !errors.Is(err, ErrAssembly) {
		t.Fatalf("expected ErrAssembly, got %v", err)
	}
}

func TestFitToCanvas(t *testing.T) {
	cases := []struct {
		w, h int
		desc string
	}{
		{1600, 900, "canvas aspect"},
		{1000, 1000, "square, pillarboxed"},
		{2000, 500, "wide, letterboxed"},
	}
	for _, c := range cases {
		offX, offY, extX, extY := fitToCanvas(c.w, c.h)
		if extX > canvasCx || extY > canvasCy {
			t.Fatalf("%s: image overflows canvas: %dx%d", c.desc, extX, extY)
		}
		if offX+extX > canvasCx || offY+extY > canvasCy {
			t.Fatalf("%s: placement off canvas", c.desc)
		}
		if offX != (canvasCx-extX)/2 || offY != (canvasCy-extY)/2 {
			t.Fatalf("%s: not centered: off=(%d,%d) ext=(%d,%d)", c.desc, offX, offY, extX, extY)
		}
		// Aspect preserved within integer rounding.
		wantAspect := float64(c.w) / float64(c.h)
		gotAspect := float64(extX) / float64(extY)
		if diff := wantAspect - gotAspect; diff > 0.01 || diff < -0.01 {
			t.Fatalf("%s: aspect %f became %f", c.desc, wantAspect, gotAspect)
		}
	}
}

func TestBuild_WrapsDocument(t *testing.T) {
	doc, err := Build(FormatPDF, imagesN(t, 2), "My Deck")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ContentType != "application/pdf" {
		t.Fatalf("content type %q", doc.ContentType)
	}
	if doc.Filename != "My Deck.pdf" {
		t.Fatalf("filename %q", doc.Filename)
	}

	doc, err = Build(FormatPPTX, imagesN(t, 2), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ContentType != "application/vnd.openxmlformats-officedocument.presentationml.presentation" {
		t.Fatalf("content type %q", doc.ContentType)
	}
	if doc.Filename != "presentation.pptx" {
		t.Fatalf("filename %q", doc.Filename)
	}
}

func TestSafeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"My Deck", "My Deck"},
		{"", "presentation"},
		{"   ", "presentation"},
		{"///???", "presentation"},
		{"Q3: Results & Outlook", "Q3_ Results _ Outlook"},
		{"Café Résumé", "Cafe Resume"},
		{"under_score-dash", "under_score-dash"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, c := range cases {
		if got := SafeName(c.in); got != c.want {
			t.Fatalf("SafeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
