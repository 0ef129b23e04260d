// Package server is the HTTP surface around the slide pipeline. It
// frames responses and maps pipeline errors to status codes; everything
// with design risk lives below it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/slidegrab/slidegrab/internal/app"
	"github.com/slidegrab/slidegrab/internal/assemble"
	"github.com/slidegrab/slidegrab/internal/download"
	"github.com/slidegrab/slidegrab/internal/extract"
	"github.com/slidegrab/slidegrab/internal/fetch"
	"github.com/slidegrab/slidegrab/internal/imaging"
	"github.com/slidegrab/slidegrab/internal/validate"
)

// Server serves the download endpoint plus the small operational
// surface (liveness, sitemap, robots).
type Server struct {
	app  *app.App
	http *http.Server
}

// New builds the router around a.
func New(a *app.App) *Server {
	s := &Server{app: a}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/download", s.handleDownload)
	r.Get("/health", s.handleHealth)
	r.Get("/sitemap.xml", fileHandler(a.Config().SitemapPath, "application/xml"))
	r.Get("/robots.txt", fileHandler(a.Config().RobotsPath, "text/plain"))

	s.http = &http.Server{
		Addr:              a.Config().Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("listening")
		errc <- s.http.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

type downloadRequest struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with url and format")
		return
	}
	format, ok := parseFormat(req.Format)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid format, choose pdf or pptx")
		return
	}

	doc, err := s.app.Download(r.Context(), strings.TrimSpace(req.URL), format)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(doc.Data)))
	_, _ = w.Write(doc.Data)
}

// statusFor maps pipeline error kinds onto HTTP status codes: caller
// mistakes and incompatible pages are 4xx, upstream and internal
// failures 5xx.
func statusFor(err error) int {
	switch {
	case errors.Is(err, validate.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, extract.ErrNoSlides):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fetch.ErrFetchFailed),
		errors.Is(err, download.ErrPartialDownload):
		return http.StatusBadGateway
	case errors.Is(err, imaging.ErrConversion),
		errors.Is(err, assemble.ErrAssembly):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func parseFormat(s string) (assemble.Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf", "":
		return assemble.FormatPDF, true
	case "pptx":
		return assemble.FormatPPTX, true
	}
	return "", false
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// fileHandler serves one static file with a fixed content type, 404
// when the file is absent or unconfigured.
func fileHandler(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if path == "" {
			http.NotFound(w, r)
			return
		}
		b, err := os.ReadFile(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}
