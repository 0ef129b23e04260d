package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaScan falls back to the page-level preview image. At most one
// candidate — usually the deck cover — so it only ever fills in when
// richer strategies found nothing.
type metaScan struct{}

func (metaScan) Name() string { return "meta" }

func (s metaScan) Scan(p *Page) []Candidate {
	if p.doc == nil {
		return nil
	}
	var url string
	p.doc.Find(`meta[property="og:image"], meta[name="twitter:image"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if v, ok := sel.Attr("content"); ok && strings.TrimSpace(v) != "" {
			url = strings.TrimSpace(v)
			return false
		}
		return true
	})
	if url == "" {
		return nil
	}
	return []Candidate{{URL: url, Strategy: s.Name(), Position: 0}}
}
