// Package app wires the slide pipeline together: validate, fetch,
// extract, download, normalize, assemble.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/slidegrab/slidegrab/internal/assemble"
	"github.com/slidegrab/slidegrab/internal/download"
	"github.com/slidegrab/slidegrab/internal/extract"
	"github.com/slidegrab/slidegrab/internal/fetch"
	"github.com/slidegrab/slidegrab/internal/imaging"
	"github.com/slidegrab/slidegrab/internal/validate"
)

// App owns the process-wide resources every request shares: one HTTP
// client and one download pool, both stateless between requests and
// safe for concurrent use. Everything per-request lives on the stack of
// Download.
type App struct {
	cfg    Config
	client *fetch.Client
	pool   *download.Pool
}

// New builds the pipeline from cfg.
func New(cfg Config) *App {
	cfg = cfg.withDefaults()
	return &App{
		cfg: cfg,
		client: &fetch.Client{
			UserAgent:    cfg.UserAgent,
			PageTimeout:  cfg.PageTimeout,
			ImageTimeout: cfg.ImageTimeout,
		},
		pool: &download.Pool{Workers: cfg.Workers},
	}
}

// Config returns the effective configuration after defaulting.
func (a *App) Config() Config {
	return a.cfg
}

// Download runs one request end to end and returns the assembled
// document. Every failure is terminal for the request; no partial or
// truncated document is ever returned.
func (a *App) Download(ctx context.Context, rawURL string, format assemble.Format) (assemble.Document, error) {
	start := time.Now()

	ref, err := validate.PresentationURL(rawURL)
	if err != nil {
		return assemble.Document{}, err
	}
	logger := log.With().Str("user", ref.User).Str("slug", ref.Slug).Logger()

	page, err := a.client.Page(ctx, ref.URL)
	if err != nil {
		logger.Warn().Err(err).Msg("page fetch failed")
		return assemble.Document{}, err
	}

	set, err := extract.Slides(page)
	if err != nil {
		logger.Warn().Int("bytes", len(page)).Msg("no slides extracted")
		return assemble.Document{}, err
	}
	ref.Title = set.Title
	logger.Debug().Int("slides", len(set.URLs)).Str("title", set.Title).Msg("slides extracted")

	images, err := a.pool.All(ctx, a.client, set.URLs)
	if err != nil {
		logger.Warn().Err(err).Msg("slide download failed")
		return assemble.Document{}, err
	}

	payloads := make([][]byte, len(images))
	for i, img := range images {
		normalized, err := imaging.Normalize(img.Data)
		if err != nil {
			logger.Warn().Err(err).Int("slide", img.Index+1).Msg("image conversion failed")
			return assemble.Document{}, err
		}
		payloads[i] = normalized
	}

	doc, err := assemble.Build(format, payloads, ref.Title)
	if err != nil {
		logger.Error().Err(err).Msg("assembly failed")
		return assemble.Document{}, err
	}

	logger.Info().
		Str("format", string(format)).
		Int("slides", len(payloads)).
		Int("bytes", len(doc.Data)).
		Dur("elapsed", time.Since(start)).
		Msg("document assembled")
	return doc, nil
}
