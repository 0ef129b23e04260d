package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/slidegrab/slidegrab/internal/app"
	"github.com/slidegrab/slidegrab/internal/server"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		addr         string
		configPath   string
		userAgent    string
		pageTimeout  time.Duration
		imageTimeout time.Duration
		workers      int
		sitemapPath  string
		robotsPath   string
		verbose      bool
	)

	flag.StringVar(&addr, "addr", envOr("SLIDEGRAB_ADDR", ":5000"), "HTTP listen address")
	flag.StringVar(&configPath, "config", os.Getenv("SLIDEGRAB_CONFIG"), "Path to optional YAML config file")
	flag.StringVar(&userAgent, "fetch.ua", os.Getenv("SLIDEGRAB_UA"), "Override the browser-like User-Agent sent upstream")
	flag.DurationVar(&pageTimeout, "fetch.pageTimeout", 15*time.Second, "Timeout for fetching the presentation page")
	flag.DurationVar(&imageTimeout, "fetch.imageTimeout", 10*time.Second, "Timeout for fetching each slide image")
	flag.IntVar(&workers, "download.workers", 20, "Concurrent slide-image fetches per request")
	flag.StringVar(&sitemapPath, "site.sitemap", "sitemap.xml", "Path to the sitemap file served at /sitemap.xml")
	flag.StringVar(&robotsPath, "site.robots", "robots.txt", "Path to the robots file served at /robots.txt")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		Addr:         addr,
		UserAgent:    userAgent,
		PageTimeout:  pageTimeout,
		ImageTimeout: imageTimeout,
		Workers:      workers,
		SitemapPath:  sitemapPath,
		RobotsPath:   robotsPath,
		Verbose:      verbose,
	}
	if configPath != "" {
		var err error
		cfg, err = app.LoadConfigFile(configPath, cfg)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(app.New(cfg))
	if err := srv.Run(ctx); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
