package extract

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// slideWidthRe matches the CDN slide-filename tail -<slideNum>-<width>.jpg.
// Dedup keys fold the width away so resolution variants of one slide
// collapse onto the first-seen, highest-reliability sighting.
var slideWidthRe = regexp.MustCompile(`-(\d+)-\d+\.jpg$`)

// merge reconciles per-strategy candidate lists, given in decreasing
// reliability order, into the canonical slide sequence.
//
// The first sighting of a slide — first by strategy reliability, then
// by the strategy's own position hints — fixes its URL and place for
// good. Lower-reliability strategies can only append slides no higher
// strategy saw: a noisy fallback may fill gaps a partially broken scan
// left behind, but can never reorder, truncate, or downgrade what a
// working scan produced. Input lists are not modified.
func merge(lists [][]Candidate) ([]string, error) {
	seen := make(map[string]bool)
	var urls []string
	for _, list := range lists {
		ordered := append([]Candidate(nil), list...)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
		for _, c := range ordered {
			n := normalizeURL(c.URL)
			if n == "" {
				continue
			}
			if strings.Contains(strings.ToLower(n), "avatar") {
				continue
			}
			key := dedupKey(n)
			if seen[key] {
				continue
			}
			seen[key] = true
			urls = append(urls, n)
		}
	}
	if len(urls) == 0 {
		return nil, ErrNoSlides
	}
	return urls, nil
}

// dedupKey reduces a normalized URL to its content identity: the query
// is ignored (cache-busting only) and the resolution suffix of CDN
// slide filenames is folded, keeping the slide number.
func dedupKey(n string) string {
	base := n
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	return slideWidthRe.ReplaceAllString(base, "-$1.jpg")
}

// normalizeURL canonicalizes one candidate URL: JSON escapes undone,
// protocol-relative resolved to https, fragment dropped. The query
// string survives — dedup keys ignore it, but a CDN token the fetch
// may require stays intact. Returns "" for anything that is not a
// usable http(s) URL.
func normalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, `\u002F`, "/")
	s = strings.ReplaceAll(s, `\/`, "/")
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}
