package extract

import "strings"

// Title recovers the presentation's display title independently of
// slide extraction: the og:title meta tag first, then the document
// title element. Empty when the page carries neither; the packager
// supplies the generic fallback.
func Title(p *Page) string {
	if p.doc == nil {
		return ""
	}
	if v, ok := p.doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}
