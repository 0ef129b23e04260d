package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrFetchFailed covers transport errors, timeouts, and non-2xx
// responses from the presentation host or its image CDN.
var ErrFetchFailed = errors.New("fetch failed")

// Browser-like defaults. SlideShare serves a reduced page, or none at
// all, to clients that announce a default library signature.
const (
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	pageAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	imageAccept        = "image/webp,image/apng,image/*,*/*;q=0.8"
	defaultPageTimeout = 15 * time.Second
)

// Client issues page and image GETs. A single instance is shared across
// requests and is safe for concurrent use; it holds no per-request state.
type Client struct {
	// HTTPClient is used when set, otherwise http.DefaultClient.
	HTTPClient *http.Client
	// UserAgent overrides DefaultUserAgent when non-empty.
	UserAgent string
	// PageTimeout bounds one page GET. Zero means the default.
	PageTimeout time.Duration
	// ImageTimeout bounds one image GET. Zero means PageTimeout.
	ImageTimeout time.Duration
}

// Page retrieves the raw HTML document for a validated presentation URL.
// One attempt only; retry policy, if any, belongs to the caller.
func (c *Client) Page(ctx context.Context, rawURL string) ([]byte, error) {
	timeout := c.PageTimeout
	if timeout <= 0 {
		timeout = defaultPageTimeout
	}
	return c.get(ctx, rawURL, pageAccept, timeout)
}

// Image retrieves one slide image.
func (c *Client) Image(ctx context.Context, rawURL string) ([]byte, error) {
	timeout := c.ImageTimeout
	if timeout <= 0 {
		timeout = c.PageTimeout
	}
	if timeout <= 0 {
		timeout = defaultPageTimeout
	}
	return c.get(ctx, rawURL, imageAccept, timeout)
}

func (c *Client) get(ctx context.Context, rawURL, accept string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", ErrFetchFailed, err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return nil, fmt.Errorf("%w: unsupported URL scheme in %q", ErrFetchFailed, rawURL)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d for %s", ErrFetchFailed, resp.StatusCode, rawURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	return body, nil
}

func isHTTPScheme(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
