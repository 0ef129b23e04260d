package extract

import (
	"reflect"
	"testing"
)

func cands(strategy string, urls ...string) []Candidate {
	out := make([]Candidate, 0, len(urls))
	for i, u := range urls {
		out = append(out, Candidate{URL: u, Strategy: strategy, Position: i})
	}
	return out
}

func TestMerge_DedupAcrossStrategies(t *testing.T) {
	lists := [][]Candidate{
		cands("picture", "https://cdn.example.com/s1.jpg"),
		cands("srcset", "https://cdn.example.com/s1.jpg?cb=123"),
	}
	got, err := merge(lists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"https://cdn.example.com/s1.jpg"}) {
		t.Fatalf("got %v", got)
	}
}

func TestMerge_ResolutionVariantsCollapse(t *testing.T) {
	// A fallback re-reporting the same slides at a lower width must not
	// lengthen the deck: the width suffix is not part of slide identity.
	lists := [][]Candidate{
		cands("picture",
			"https://image.slidesharecdn.com/deck/95/talk-1-1024.jpg",
			"https://image.slidesharecdn.com/deck/95/talk-2-1024.jpg"),
		cands("pattern",
			"https://image.slidesharecdn.com/deck/95/talk-1-320.jpg",
			"https://image.slidesharecdn.com/deck/95/talk-1-1024.jpg",
			"https://image.slidesharecdn.com/deck/95/talk-2-320.jpg",
			"https://image.slidesharecdn.com/deck/95/talk-2-1024.jpg"),
	}
	got, err := merge(lists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"https://image.slidesharecdn.com/deck/95/talk-1-1024.jpg",
		"https://image.slidesharecdn.com/deck/95/talk-2-1024.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_KeepsQueryOnOutput(t *testing.T) {
	// The query is cache-busting for identity purposes only: dedup
	// ignores it, but the URL handed to the fetcher keeps it.
	lists := [][]Candidate{
		cands("picture", "https://image.slidesharecdn.com/deck/95/talk-1-1024.jpg?token=abc"),
		cands("pattern", "https://image.slidesharecdn.com/deck/95/talk-1-1024.jpg"),
	}
	got, err := merge(lists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://image.slidesharecdn.com/deck/95/talk-1-1024.jpg?token=abc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_GapFillingKeepsHigherOrder(t *testing.T) {
	// Top strategy saw slides 1 and 3; a noisier one saw all three.
	// The gap is filled without reordering what the top strategy fixed.
	lists := [][]Candidate{
		cands("picture", "https://cdn.example.com/1.jpg", "https://cdn.example.com/3.jpg"),
		cands("pattern", "https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg", "https://cdn.example.com/3.jpg"),
	}
	got, err := merge(lists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/3.jpg",
		"https://cdn.example.com/2.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_LowerStrategyNeverReorders(t *testing.T) {
	lists := [][]Candidate{
		cands("picture", "https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"),
		cands("pattern", "https://cdn.example.com/b.jpg", "https://cdn.example.com/a.jpg"),
	}
	got, err := merge(lists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_PositionHintOrdersWithinStrategy(t *testing.T) {
	list := []Candidate{
		{URL: "https://cdn.example.com/2.jpg", Strategy: "srcset", Position: 1},
		{URL: "https://cdn.example.com/1.jpg", Strategy: "srcset", Position: 0},
	}
	got, err := merge([][]Candidate{list})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	list := []Candidate{
		{URL: "https://cdn.example.com/2.jpg", Strategy: "srcset", Position: 1},
		{URL: "https://cdn.example.com/1.jpg", Strategy: "srcset", Position: 0},
	}
	before := append([]Candidate(nil), list...)
	if _, err := merge([][]Candidate{list}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(list, before) {
		t.Fatalf("caller's slice was reordered: %v", list)
	}
}

func TestMerge_EmptyIsNoSlides(t *testing.T) {
	if _, err := merge([][]Candidate{nil, {}, cands("meta", "javascript:void(0)")}); err != ErrNoSlides {
		t.Fatalf("expected ErrNoSlides, got %v", err)
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://cdn.example.com/s.jpg?cf=1#frag", "https://cdn.example.com/s.jpg?cf=1"},
		{"//cdn.example.com/s.jpg", "https://cdn.example.com/s.jpg"},
		{`https:\/\/cdn.example.com\/s.jpg`, "https://cdn.example.com/s.jpg"},
		{`https:\u002F\u002Fcdn.example.com\u002Fs.jpg`, "https://cdn.example.com/s.jpg"},
		{`https://cdn.example.com/s.jpg`, "https://cdn.example.com/s.jpg"},
		{"ftp://cdn.example.com/s.jpg", ""},
		{"not a url at all\x7f", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizeURL(c.in); got != c.want {
			t.Fatalf("normalizeURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDedupKey(t *testing.T) {
	cases := []struct{ in, want string }{
		{
			"https://image.slidesharecdn.com/deck/95/talk-1-1024.jpg",
			"https://image.slidesharecdn.com/deck/95/talk-1.jpg",
		},
		{
			"https://image.slidesharecdn.com/deck/95/talk-1-320.jpg",
			"https://image.slidesharecdn.com/deck/95/talk-1.jpg",
		},
		{
			"https://cdn.example.com/s.jpg?cb=123",
			"https://cdn.example.com/s.jpg",
		},
		{
			"https://cdn.example.com/s1.jpg",
			"https://cdn.example.com/s1.jpg",
		},
	}
	for _, c := range cases {
		if got := dedupKey(c.in); got != c.want {
			t.Fatalf("dedupKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
