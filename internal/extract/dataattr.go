package extract

import "github.com/PuerkitoBio/goquery"

// Lazy-load attribute names seen on slide images across layout
// revisions, most specific first.
var lazyAttrs = []string{"data-full", "data-normal", "data-src", "data-original", "data-lazy-src"}

// dataAttrScan picks up image URLs stashed in lazy-loading data
// attributes, which the DOM scans above miss because src is a
// placeholder until client script swaps it in.
type dataAttrScan struct{}

func (dataAttrScan) Name() string { return "dataattr" }

func (s dataAttrScan) Scan(p *Page) []Candidate {
	if p.doc == nil {
		return nil
	}
	var out []Candidate
	p.doc.Find("img, source").Each(func(i int, sel *goquery.Selection) {
		if val, ok := sel.Attr("data-srcset"); ok {
			if u := largestInSrcset(val); u != "" {
				out = append(out, Candidate{URL: u, Strategy: s.Name(), Position: i})
				return
			}
		}
		for _, attr := range lazyAttrs {
			if u, ok := sel.Attr(attr); ok && u != "" {
				out = append(out, Candidate{URL: u, Strategy: s.Name(), Position: i})
				return
			}
		}
	})
	return out
}
