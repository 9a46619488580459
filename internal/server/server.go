// Package server exposes a provider's catalog over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Digital-Shane/title-crawl/internal/catalog"
	"github.com/Digital-Shane/title-crawl/internal/provider"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// New builds the API router for p.
func New(p provider.Provider, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, accessLog(logger), middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/provider", handleProvider(p))
	r.Get("/series", handlePopular(p))
	r.Get("/search", handleSearch(p))
	r.Get("/latest", handleLatest(p))
	r.Get("/details", handleDetails(p))
	r.Get("/episodes", handleEpisodes(p))
	r.Get("/videos", handleVideos(p))

	return r
}

// Serve runs h on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info().Msg("api stopped")
		return nil
	}
}

func accessLog(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

func handleProvider(p provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"name":         p.Name(),
			"description":  p.Description(),
			"base_url":     p.BaseURL(),
			"capabilities": p.Capabilities(),
		})
	}
}

func handlePopular(p provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := p.Popular(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, series)
	}
}

func handleSearch(p provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			errorJSON(w, http.StatusBadRequest, "missing query parameter q")
			return
		}
		series, err := p.Search(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, series)
	}
}

func handleLatest(p provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := p.Latest(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, series)
	}
}

func handleDetails(p provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := r.URL.Query().Get("url")
		if u == "" {
			errorJSON(w, http.StatusBadRequest, "missing query parameter url")
			return
		}
		series, err := p.Details(r.Context(), provider.Series{URL: u, Title: r.URL.Query().Get("title")})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, series)
	}
}

func handleEpisodes(p provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := r.URL.Query().Get("series")
		if u == "" {
			errorJSON(w, http.StatusBadRequest, "missing query parameter series")
			return
		}
		entries, err := p.Episodes(r.Context(), provider.Series{URL: u})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func handleVideos(p provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := r.URL.Query().Get("url")
		if u == "" {
			errorJSON(w, http.StatusBadRequest, "missing query parameter url")
			return
		}
		videos, err := p.Videos(r.Context(), catalog.Entry{URL: u})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, videos)
	}
}

// statusFor maps provider errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, provider.ErrNotSupported):
		return http.StatusNotImplemented
	case errors.Is(err, provider.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, provider.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	var pe *provider.ProviderError
	if errors.As(err, &pe) && pe.Retry && pe.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(pe.RetryAfter))
	}
	errorJSON(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
