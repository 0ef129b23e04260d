// Package extract recovers the ordered slide-image sequence from a
// presentation page. The page markup is undocumented and shifts without
// notice, so no single scan is trusted: a fixed set of independent
// strategies each propose candidates and a merger reconciles them.
package extract

import (
	"bytes"
	"errors"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoSlides is returned when every strategy comes up empty. It usually
// means the presentation is private or the page layout changed.
var ErrNoSlides = errors.New("no slide images found")

// Candidate is one unconfirmed slide-image sighting: where a strategy
// saw it and in what order. It only lives until merging.
type Candidate struct {
	URL      string
	Strategy string
	// Position is the order of appearance within the strategy's own scan.
	Position int
}

// Strategy is one self-contained heuristic for locating slide images.
// Implementations are stateless, tolerate arbitrary markup, and return
// nil rather than fail; a broken page is the merger's problem.
type Strategy interface {
	Name() string
	Scan(p *Page) []Candidate
}

// Page is the parsed document handed to strategies. Raw bytes stay
// available for scans that work on script or text content the DOM view
// does not expose usefully.
type Page struct {
	doc *goquery.Document
	raw []byte
}

// ParsePage parses raw HTML once for all strategies. Parsing is lenient;
// a nil doc only happens on pathological input, and raw-text strategies
// still run against it.
func ParsePage(raw []byte) *Page {
	p := &Page{raw: raw}
	node, err := html.Parse(bytes.NewReader(raw))
	if err == nil && node != nil {
		p.doc = goquery.NewDocumentFromNode(node)
	}
	return p
}

// SlideSet is the canonical deduplicated slide sequence for one
// presentation, plus the recovered display title (may be empty).
type SlideSet struct {
	Title string
	URLs  []string
}

// strategies returns the fixed scan set in decreasing reliability order.
// The embedded-JSON descriptor is authoritative when present; DOM scans
// follow; the meta tag yields at most a cover image; the raw-text
// pattern scan is the last resort for script-injected markup.
func strategies() []Strategy {
	return []Strategy{
		nextDataScan{},
		pictureScan{},
		srcsetScan{},
		dataAttrScan{},
		metaScan{},
		patternScan{},
	}
}

// Slides runs every strategy over the document and merges their
// candidates into the canonical SlideSet. Deterministic for a given
// input: same bytes, same order, every time.
func Slides(raw []byte) (SlideSet, error) {
	p := ParsePage(raw)
	lists := make([][]Candidate, 0, 6)
	for _, s := range strategies() {
		lists = append(lists, s.Scan(p))
	}
	urls, err := merge(lists)
	if err != nil {
		return SlideSet{}, err
	}
	return SlideSet{Title: Title(p), URLs: urls}, nil
}
