// Package handlers serves pipeline results over HTTP.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/spencer-p/oceantrends/pkg/align"
	"github.com/spencer-p/oceantrends/pkg/cache"
	"github.com/spencer-p/oceantrends/pkg/fetch"
	"github.com/spencer-p/oceantrends/pkg/pipeline"
)

// Runner produces a pipeline result for a config.
type Runner func(ctx context.Context, cfg pipeline.Config) (*pipeline.Result, error)

// LiveRunner runs the pipeline against the real upstream sources.
func LiveRunner(ctx context.Context, cfg pipeline.Config) (*pipeline.Result, error) {
	sources, err := pipeline.NewSources(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg, sources).Run(ctx)
}

type server struct {
	cfg   pipeline.Config
	run   Runner
	cache *cache.Timed
	store sessions.Store
}

// Register adds the API and plot routes to r.
func Register(r *mux.Router, cfg pipeline.Config, run Runner) {
	s := &server{
		cfg:   cfg,
		run:   run,
		cache: cache.NewTimed(cfg.CacheTTL),
		store: newStore(cfg.SecureCookies),
	}
	r.HandleFunc("/api/v1/aligned", s.serveAligned).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/spikes", s.serveSpikes).Methods(http.MethodGet)
	r.HandleFunc("/plot/{consumer}", s.servePlot).Methods(http.MethodGet)
}

type spikesOutput struct {
	K         float64     `json:"k"`
	Threshold float64     `json:"threshold_m"`
	Spikes    align.Table `json:"spikes"`
}

func (s *server) serveAligned(w http.ResponseWriter, r *http.Request) {
	s.cached(w, r, cacheKey(r), func(result *pipeline.Result, buf *bytes.Buffer) (string, error) {
		return "application/json", json.NewEncoder(buf).Encode(result.Table)
	})
}

func (s *server) serveSpikes(w http.ResponseWriter, r *http.Request) {
	k, err := spikeK(s.store, w, r, s.cfg.SpikeK)
	if err != nil {
		writeError(w, err)
		return
	}
	// k may come from the session rather than the URL.
	key := fmt.Sprintf("%s %s k=%v", r.Method, r.URL.Path, k)
	s.cached(w, r, key, func(result *pipeline.Result, buf *bytes.Buffer) (string, error) {
		result.Respike(k)
		return "application/json", json.NewEncoder(buf).Encode(spikesOutput{
			K:         k,
			Threshold: result.Threshold,
			Spikes:    result.Spikes,
		})
	})
}

func (s *server) servePlot(w http.ResponseWriter, r *http.Request) {
	consumer := mux.Vars(r)["consumer"]
	if !pipeline.KnownConsumer(consumer) {
		http.NotFound(w, r)
		return
	}
	s.cached(w, r, cacheKey(r), func(result *pipeline.Result, buf *bytes.Buffer) (string, error) {
		return pipeline.ContentType(consumer), pipeline.Render(buf, consumer, result, s.cfg)
	})
}

// cached serves key from memory if possible, otherwise runs the pipeline and
// renders it with render.
func (s *server) cached(w http.ResponseWriter, r *http.Request, key string, render func(*pipeline.Result, *bytes.Buffer) (string, error)) {
	if entry, ok := s.cache.Get(key); ok {
		w.Header().Add("Content-Type", entry.ContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(entry.Body)
		return
	}
	log.Printf("[INFO] no cache data for %q", key)

	result, err := s.run(r.Context(), s.cfg)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	contentType, err := render(result, &buf)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Add("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())

	s.cache.Set(key, cache.Entry{ContentType: contentType, Body: buf.Bytes()})
}

// cache based on method and URL, which should encapsulate the query
func cacheKey(r *http.Request) string {
	return fmt.Sprintf("%s %s", r.Method, r.URL)
}

type badRequest struct {
	param, value string
}

func (e *badRequest) Error() string {
	return fmt.Sprintf("bad value %q for %s", e.value, e.param)
}

// statusFor maps pipeline failures onto HTTP status codes.
func statusFor(err error) int {
	var br *badRequest
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest
	case errors.Is(err, fetch.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, align.ErrEmptyDataset):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	w.Header().Add("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	fmt.Fprintf(w, "Failed to get data: %v", err)
	log.Printf("[ERROR] %d: %v", code, err)
}
