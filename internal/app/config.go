package app

import "time"

// Config holds runtime configuration for the service.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":5000".
	Addr string

	// Fetching
	UserAgent    string
	PageTimeout  time.Duration
	ImageTimeout time.Duration

	// Download concurrency
	Workers int

	// Static files served by the surrounding HTTP layer.
	SitemapPath string
	RobotsPath  string

	Verbose bool
}

// withDefaults fills unset fields so a zero Config still runs.
func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = ":5000"
	}
	if c.PageTimeout <= 0 {
		c.PageTimeout = 15 * time.Second
	}
	if c.ImageTimeout <= 0 {
		c.ImageTimeout = 10 * time.Second
	}
	if c.Workers <= 0 {
		c.Workers = 20
	}
	return c
}
