package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// srcsetScan parses width-annotated srcset lists on slide <img> elements
// and keeps the largest variant of each.
type srcsetScan struct{}

func (srcsetScan) Name() string { return "srcset" }

func (s srcsetScan) Scan(p *Page) []Candidate {
	if p.doc == nil {
		return nil
	}
	var out []Candidate
	p.doc.Find("img[srcset]").Each(func(i int, sel *goquery.Selection) {
		val, _ := sel.Attr("srcset")
		if u := largestInSrcset(val); u != "" {
			out = append(out, Candidate{URL: u, Strategy: s.Name(), Position: i})
		}
	})
	return out
}

type srcsetEntry struct {
	url   string
	width int
}

// parseSrcset splits a srcset attribute into url/width pairs. Entries
// without a width descriptor get width 0 so any annotated entry beats
// them.
func parseSrcset(val string) []srcsetEntry {
	var entries []srcsetEntry
	for _, part := range strings.Split(val, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 0 {
			continue
		}
		e := srcsetEntry{url: fields[0]}
		if len(fields) > 1 {
			desc := fields[1]
			if strings.HasSuffix(desc, "w") {
				if n, err := strconv.Atoi(strings.TrimSuffix(desc, "w")); err == nil {
					e.width = n
				}
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func largestInSrcset(val string) string {
	var best srcsetEntry
	for i, e := range parseSrcset(val) {
		if i == 0 || e.width > best.width {
			best = e
		}
	}
	return best.url
}
