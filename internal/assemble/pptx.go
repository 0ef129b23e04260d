package assemble

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// PPTX is a ZIP of OOXML parts. Slides live at ppt/slides/slideN.xml in
// the presentationml (p:) namespace with drawingml (a:) payloads; each
// part's relationships sit next to it under _rels/. The writer emits
// the minimal part set readers require: presentation, one blank master
// and layout, a theme, and one picture-only slide per image.

// Widescreen canvas, 13.333in x 7.5in in EMU (914400 per inch).
const (
	canvasCx = 12192000
	canvasCy = 6858000
	// Image pixels are treated as 96 dpi when mapped to EMU.
	emuPerPixel = 9525
)

const (
	nsDrawing   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRel       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPresentat = "http://schemas.openxmlformats.org/presentationml/2006/main"
)

// PPTX produces a slide deck with one slide per image. Each image is
// scaled to fit the widescreen canvas preserving aspect ratio and
// centered: no cropping, no distortion.
func PPTX(images [][]byte, title string) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images", ErrAssembly)
	}

	type slidePart struct {
		xml      string
		mediaExt string
		media    []byte
	}
	slides := make([]slidePart, 0, len(images))
	for i, data := range images {
		w, h, format, err := imageInfo(data)
		if err != nil {
			return nil, err
		}
		ext := "jpg"
		if format == "png" {
			ext = "png"
		}
		offX, offY, extX, extY := fitToCanvas(w, h)
		slides = append(slides, slidePart{
			xml:      slideXML(i+1, offX, offY, extX, extY),
			mediaExt: ext,
			media:    data,
		})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) error {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = f.Write([]byte(content))
		return err
	}

	err := write("[Content_Types].xml", contentTypesXML(len(slides)))
	if err == nil {
		err = write("_rels/.rels", rootRelsXML)
	}
	if err == nil {
		err = write("docProps/core.xml", corePropsXML(title))
	}
	if err == nil {
		err = write("ppt/presentation.xml", presentationXML(len(slides)))
	}
	if err == nil {
		err = write("ppt/_rels/presentation.xml.rels", presentationRelsXML(len(slides)))
	}
	if err == nil {
		err = write("ppt/slideMasters/slideMaster1.xml", slideMasterXML)
	}
	if err == nil {
		err = write("ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML)
	}
	if err == nil {
		err = write("ppt/slideLayouts/slideLayout1.xml", slideLayoutXML)
	}
	if err == nil {
		err = write("ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML)
	}
	if err == nil {
		err = write("ppt/theme/theme1.xml", themeXML)
	}
	for i, s := range slides {
		if err != nil {
			break
		}
		n := i + 1
		if err = write(fmt.Sprintf("ppt/slides/slide%d.xml", n), s.xml); err != nil {
			break
		}
		if err = write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsXML(n, s.mediaExt)); err != nil {
			break
		}
		f, cerr := zw.Create(fmt.Sprintf("ppt/media/image%d.%s", n, s.mediaExt))
		if cerr != nil {
			err = cerr
			break
		}
		_, err = f.Write(s.media)
	}
	if err == nil {
		err = zw.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}
	return buf.Bytes(), nil
}

// fitToCanvas computes the contain-fit placement of a w x h pixel image
// on the widescreen canvas, in EMU.
func fitToCanvas(w, h int) (offX, offY, extX, extY int64) {
	if int64(w)*canvasCy > int64(h)*canvasCx {
		// Wider than the canvas: full width, letterboxed.
		extX = canvasCx
		extY = int64(canvasCx) * int64(h) / int64(w)
		offY = (canvasCy - extY) / 2
	} else {
		extY = canvasCy
		extX = int64(canvasCy) * int64(w) / int64(h)
		offX = (canvasCx - extX) / 2
	}
	return offX, offY, extX, extY
}

func contentTypesXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="jpg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

func corePropsXML(title string) string {
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(title))
	return xml.Header +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">` +
		`<dc:title>` + escaped.String() + `</dc:title>` +
		`</cp:coreProperties>`
}

func presentationXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<p:presentation xmlns:a=%q xmlns:r=%q xmlns:p=%q>`, nsDrawing, nsRel, nsPresentat)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, 1+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, canvasCx, canvasCy)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRelsXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 1+i, i)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// emptySpTree opens the shape-tree skeleton every cSld needs; callers
// append their shapes and close with </p:spTree>.
const emptySpTree = `<p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

const slideMasterXML = xml.Header +
	`<p:sldMaster xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRel + `" xmlns:p="` + nsPresentat + `">` +
	`<p:cSld>` + emptySpTree + `</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayoutXML = xml.Header +
	`<p:sldLayout xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRel + `" xmlns:p="` + nsPresentat + `" type="blank">` +
	`<p:cSld name="Blank">` + emptySpTree + `</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
	`</p:sldLayout>`

const slideLayoutRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

func slideXML(n int, offX, offY, extX, extY int64) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<p:sld xmlns:a=%q xmlns:r=%q xmlns:p=%q>`, nsDrawing, nsRel, nsPresentat)
	b.WriteString(`<p:cSld>` + emptySpTree)
	b.WriteString(`<p:pic>`)
	fmt.Fprintf(&b, `<p:nvPicPr><p:cNvPr id="2" name="Slide %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`, n)
	b.WriteString(`<p:blipFill><a:blip r:embed="rId1"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`)
	b.WriteString(`<p:spPr><a:xfrm>`)
	fmt.Fprintf(&b, `<a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/>`, offX, offY, extX, extY)
	b.WriteString(`</a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`)
	b.WriteString(`</p:pic>`)
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func slideRelsXML(n int, mediaExt string) string {
	return xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image` + fmt.Sprint(n) + `.` + mediaExt + `"/>` +
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
		`</Relationships>`
}

// Minimal but complete theme: readers refuse masters whose theme part
// is missing or lacks the color/font/format scheme triple.
const themeXML = xml.Header +
	`<a:theme xmlns:a="` + nsDrawing + `" name="Office Theme"><a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Office">` +
	`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements></a:theme>`
