package extract

import "github.com/PuerkitoBio/goquery"

// pictureScan walks <picture> blocks, the markup the site uses for
// responsive slide rendering, and takes the highest-resolution <source>
// of each block. Falls back to the block's <img> when no source carries
// a srcset.
type pictureScan struct{}

func (pictureScan) Name() string { return "picture" }

func (s pictureScan) Scan(p *Page) []Candidate {
	if p.doc == nil {
		return nil
	}
	var out []Candidate
	p.doc.Find("picture").Each(func(i int, pic *goquery.Selection) {
		if u := bestPictureSource(pic); u != "" {
			out = append(out, Candidate{URL: u, Strategy: s.Name(), Position: i})
		}
	})
	return out
}

func bestPictureSource(pic *goquery.Selection) string {
	var best srcsetEntry
	pic.Find("source").Each(func(_ int, src *goquery.Selection) {
		val, ok := src.Attr("srcset")
		if !ok {
			return
		}
		for _, e := range parseSrcset(val) {
			if best.url == "" || e.width > best.width {
				best = e
			}
		}
	})
	if best.url != "" {
		return best.url
	}
	if img := pic.Find("img").First(); img.Length() > 0 {
		if val, ok := img.Attr("srcset"); ok {
			if u := largestInSrcset(val); u != "" {
				return u
			}
		}
		if u, ok := img.Attr("src"); ok {
			return u
		}
	}
	return ""
}
