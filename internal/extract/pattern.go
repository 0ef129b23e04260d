package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// patternScan is the raw-text last resort for pages whose slide markup
// is injected by client script the fetcher never executes: the CDN URL
// shape and the slideImageUrl JSON key still appear verbatim in the
// page source.
type patternScan struct{}

var (
	cdnImageRe = regexp.MustCompile(`https://image\.slidesharecdn\.com/[^"'\s\\]+/\d+/[^"'\s\\]+-\d+-\d+\.jpg`)
	slideKeyRe = regexp.MustCompile(`"slideImageUrl"\s*:\s*"([^"]+)"`)
	slideNumRe = regexp.MustCompile(`-(\d+)-\d+\.jpg`)
)

func (patternScan) Name() string { return "pattern" }

func (s patternScan) Scan(p *Page) []Candidate {
	text := string(p.raw)

	var urls []string
	urls = append(urls, cdnImageRe.FindAllString(text, -1)...)
	for _, m := range slideKeyRe.FindAllStringSubmatch(text, -1) {
		urls = append(urls, m[1])
	}

	seen := make(map[string]bool)
	var kept []string
	for _, u := range urls {
		u = strings.ReplaceAll(u, `\u002F`, "/")
		u = strings.ReplaceAll(u, `\/`, "/")
		if !strings.HasPrefix(u, "http") || !strings.Contains(u, "slidesharecdn.com") {
			continue
		}
		if strings.Contains(strings.ToLower(u), "avatar") {
			continue
		}
		base := u
		if i := strings.IndexByte(base, '?'); i >= 0 {
			base = base[:i]
		}
		if seen[base] {
			continue
		}
		seen[base] = true
		kept = append(kept, u)
	}

	// CDN filenames end -<slide>-<width>.jpg; recover deck order from
	// the slide number. Stable sort keeps unnumbered URLs where the
	// scan found them.
	sort.SliceStable(kept, func(i, j int) bool {
		return slideNumber(kept[i]) < slideNumber(kept[j])
	})
	return toCandidates(kept, s.Name())
}

func slideNumber(u string) int {
	m := slideNumRe.FindStringSubmatch(u)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
