// Package download fetches every slide image of a deck concurrently
// while preserving the canonical order in its result.
package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPartialDownload is returned when one or more slide images could
// not be fetched. The job fails as a whole: a document with silently
// missing pages would be worse than an explicit failure.
var ErrPartialDownload = errors.New("slide download incomplete")

// DefaultWorkers bounds concurrent image fetches per job.
const DefaultWorkers = 20

// Fetcher retrieves one image by URL. *fetch.Client satisfies this.
type Fetcher interface {
	Image(ctx context.Context, url string) ([]byte, error)
}

// SlideImage is one downloaded slide: its 0-based position in the
// canonical order and the raw bytes as served.
type SlideImage struct {
	Index int
	Data  []byte
}

// Pool downloads image sets under a bounded worker count. It keeps no
// per-job state and is safe to share across concurrent requests.
type Pool struct {
	// Workers caps concurrent fetches. Zero means DefaultWorkers.
	Workers int
}

// All fetches every URL and returns the images indexed exactly as the
// input: result[i] always corresponds to urls[i] no matter which worker
// finished first. Any single failure fails the whole job with
// ErrPartialDownload; partial results are discarded, though outstanding
// fetches are left to drain into their slots rather than force-cancelled.
func (p *Pool) All(ctx context.Context, f Fetcher, urls []string) ([]SlideImage, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no URLs to fetch", ErrPartialDownload)
	}
	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(urls) {
		workers = len(urls)
	}

	// Index-keyed slots: completion order never affects output order.
	results := make([]SlideImage, len(urls))
	failures := make([]error, len(urls))

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				data, err := f.Image(ctx, urls[i])
				if err != nil {
					failures[i] = err
					continue
				}
				results[i] = SlideImage{Index: i, Data: data}
			}
		}()
	}
	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range failures {
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d of %d: %v", ErrPartialDownload, i+1, len(urls), err)
		}
	}
	return results, nil
}
