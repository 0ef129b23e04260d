package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned for anything that is not a well-formed
// public SlideShare presentation URL.
var ErrInvalidURL = errors.New("invalid presentation URL")

// PresentationRef identifies one presentation page. User and Slug come
// from the URL path; Title stays empty until extraction recovers it.
type PresentationRef struct {
	URL   string
	User  string
	Slug  string
	Title string
}

const baseDomain = "slideshare.net"

// PresentationURL validates raw as a SlideShare presentation URL and
// returns its parsed form. Accepted hosts are the bare domain, www, or a
// two-letter regional subdomain (pt, de, es, fr, ...). The path must
// carry at least a user segment and a presentation slug. Malformed input
// of any shape yields ErrInvalidURL, never a panic.
func PresentationURL(raw string) (PresentationRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PresentationRef{}, fmt.Errorf("%w: empty input", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return PresentationRef{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return PresentationRef{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if !allowedHost(u.Hostname()) {
		return PresentationRef{}, fmt.Errorf("%w: host %q is not a recognized presentation host", ErrInvalidURL, u.Hostname())
	}
	segs := pathSegments(u.Path)
	if len(segs) < 2 {
		return PresentationRef{}, fmt.Errorf("%w: path %q lacks user and presentation segments", ErrInvalidURL, u.Path)
	}
	return PresentationRef{
		URL:  u.String(),
		User: segs[0],
		Slug: segs[1],
	}, nil
}

func allowedHost(host string) bool {
	host = strings.ToLower(host)
	if host == baseDomain || host == "www."+baseDomain {
		return true
	}
	// Regional subdomains are two-letter locale codes.
	rest, ok := strings.CutSuffix(host, "."+baseDomain)
	if !ok || len(rest) != 2 {
		return false
	}
	for _, r := range rest {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func pathSegments(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
