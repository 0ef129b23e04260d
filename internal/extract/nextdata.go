package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nextDataScan reads the framework state blob embedded in a
// script#__NEXT_DATA__ element. When the slideshow descriptor inside it
// is complete, every slide URL can be reconstructed at the highest
// published resolution, which makes this the most reliable strategy by
// far. Key matching is best-effort: the descent tolerates renamed or
// missing levels and falls back to hunting for any image-URL array in
// the blob.
type nextDataScan struct{}

func (nextDataScan) Name() string { return "nextdata" }

func (s nextDataScan) Scan(p *Page) []Candidate {
	if p.doc == nil {
		return nil
	}
	var out []Candidate
	p.doc.Find("script#__NEXT_DATA__").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		out = slidesFromStateJSON(sel.Text(), s.Name())
		return out == nil
	})
	return out
}

func slidesFromStateJSON(text, strategy string) []Candidate {
	var root any
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		return nil
	}
	if urls := reconstructSlideshow(root); len(urls) > 0 {
		return toCandidates(urls, strategy)
	}
	if urls := findImageArray(root, 0); len(urls) > 0 {
		return toCandidates(urls, strategy)
	}
	return nil
}

// reconstructSlideshow rebuilds slide URLs from the descriptor at
// props.pageProps.slideshow: host/imageLocation/quality/title-N-width.jpg
// for N in 1..totalSlides, using the largest published size.
func reconstructSlideshow(root any) []string {
	ss := digMap(root, "props", "pageProps", "slideshow")
	if ss == nil {
		return nil
	}
	slides := digMap(ss, "slides")
	total := asInt(lookup(ss, "totalSlides"))
	if slides == nil || total <= 0 {
		return nil
	}
	host := asString(lookup(slides, "host"))
	location := asString(lookup(slides, "imageLocation"))
	title := asString(lookup(slides, "title"))
	sizes, _ := lookup(slides, "imageSizes").([]any)
	if host == "" || location == "" || title == "" || len(sizes) == 0 {
		return nil
	}
	// Sizes are published smallest first.
	best, _ := sizes[len(sizes)-1].(map[string]any)
	quality := asInt(lookup(best, "quality"))
	if quality <= 0 {
		quality = 100
	}
	width := asInt(lookup(best, "width"))
	if width <= 0 {
		width = 1280
	}
	urls := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		urls = append(urls, fmt.Sprintf("%s/%s/%d/%s-%d-%d.jpg", host, location, quality, title, i, width))
	}
	return urls
}

// findImageArray walks arbitrary JSON for the first array whose string
// elements mostly look like slide-image URLs.
func findImageArray(v any, depth int) []string {
	if depth > 12 {
		return nil
	}
	switch t := v.(type) {
	case []any:
		var urls []string
		for _, el := range t {
			s, ok := el.(string)
			if !ok || !looksLikeImageURL(s) {
				urls = nil
				break
			}
			urls = append(urls, s)
		}
		if len(urls) >= 2 {
			return urls
		}
		for _, el := range t {
			if found := findImageArray(el, depth+1); found != nil {
				return found
			}
		}
	case map[string]any:
		// Deterministic walk: map iteration order must not influence
		// which array wins.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found := findImageArray(t[k], depth+1); found != nil {
				return found
			}
		}
	}
	return nil
}

func looksLikeImageURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "http") && !strings.HasPrefix(s, "//") {
		return false
	}
	base := s
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp", ".gif"} {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	return false
}

func toCandidates(urls []string, strategy string) []Candidate {
	out := make([]Candidate, 0, len(urls))
	for i, u := range urls {
		out = append(out, Candidate{URL: u, Strategy: strategy, Position: i})
	}
	return out
}

// digMap descends nested objects by key, case-insensitively, returning
// nil as soon as a level is missing or not an object.
func digMap(v any, keys ...string) map[string]any {
	cur, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	for _, k := range keys {
		cur, ok = lookup(cur, k).(map[string]any)
		if !ok {
			return nil
		}
	}
	return cur
}

func lookup(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		var n int
		_, err := fmt.Sscanf(strings.TrimSpace(t), "%d", &n)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
