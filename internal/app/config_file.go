package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Nested
// sections map naturally onto flags.
type FileConfig struct {
	Addr string `yaml:"addr"`

	Fetch struct {
		UserAgent string `yaml:"userAgent"`
		// Durations use Go syntax, e.g. "15s".
		PageTimeout  string `yaml:"pageTimeout"`
		ImageTimeout string `yaml:"imageTimeout"`
	} `yaml:"fetch"`

	Download struct {
		Workers int `yaml:"workers"`
	} `yaml:"download"`

	Site struct {
		Sitemap string `yaml:"sitemap"`
		Robots  string `yaml:"robots"`
	} `yaml:"site"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file and overlays it onto base:
// file values win only where set.
func LoadConfigFile(path string, base Config) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return base, fmt.Errorf("parse config file %s: %w", path, err)
	}
	out := base
	if fc.Addr != "" {
		out.Addr = fc.Addr
	}
	if fc.Fetch.UserAgent != "" {
		out.UserAgent = fc.Fetch.UserAgent
	}
	if fc.Fetch.PageTimeout != "" {
		d, err := time.ParseDuration(fc.Fetch.PageTimeout)
		if err != nil {
			return base, fmt.Errorf("parse fetch.pageTimeout: %w", err)
		}
		out.PageTimeout = d
	}
	if fc.Fetch.ImageTimeout != "" {
		d, err := time.ParseDuration(fc.Fetch.ImageTimeout)
		if err != nil {
			return base, fmt.Errorf("parse fetch.imageTimeout: %w", err)
		}
		out.ImageTimeout = d
	}
	if fc.Download.Workers > 0 {
		out.Workers = fc.Download.Workers
	}
	if fc.Site.Sitemap != "" {
		out.SitemapPath = fc.Site.Sitemap
	}
	if fc.Site.Robots != "" {
		out.RobotsPath = fc.Site.Robots
	}
	if fc.Verbose {
		out.Verbose = true
	}
	return out, nil
}
