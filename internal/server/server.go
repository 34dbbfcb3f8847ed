package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/appforge-labs/appforge/internal/artifact"
	apperrors "github.com/appforge-labs/appforge/internal/errors"
	"github.com/appforge-labs/appforge/internal/options"
	"github.com/appforge-labs/appforge/internal/output"
)

// Generator runs the generation pipeline for one configuration.
type Generator interface {
	Generate(ctx context.Context, raw options.Raw) (artifact.Handle, error)
}

// Archives serves and expires published archives.
type Archives interface {
	Open(id string) (*artifact.Artifact, error)
	Release(id string) error
	Run(ctx context.Context, interval time.Duration)
}

// Server is the HTTP front end.
type Server struct {
	gen      Generator
	archives Archives
	cfg      Config
	handler  http.Handler
}

// New creates a Server. Zero Config fields take their defaults.
func New(gen Generator, archives Archives, cfg Config) *Server {
	s := &Server{
		gen:      gen,
		archives: archives,
		cfg:      cfg.withDefaults(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /download/{id}", s.handleDownload)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.handler = logRequests(s.cors(mux))
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and sweeps expired archives until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.archives.Run(sweepCtx, s.cfg.SweepInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	output.Info("listening", "addr", ln.Addr().String(), "origin", s.cfg.AllowedOrigin)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	output.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var raw options.Raw
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.sendError(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return
		}
		s.sendError(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	h, err := s.gen.Generate(r.Context(), raw)
	if err != nil {
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			s.sendError(w, http.StatusBadRequest, ErrorResponse{
				Error:  ve.Message,
				Reason: string(ve.Reason),
				Field:  ve.Field,
			})
			return
		}
		s.sendError(w, http.StatusInternalServerError, ErrorResponse{Error: apperrors.PublicMessage(err)})
		return
	}

	s.sendJSON(w, http.StatusOK, GenerateResponse{
		ID:          h.ID,
		DownloadURL: s.baseURL(r) + "/download/" + h.ID,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	a, err := s.archives.Open(id)
	if err != nil {
		output.Debug("download refused", "id", id, "err", err)
		s.sendError(w, http.StatusNotFound, ErrorResponse{Error: apperrors.PublicMessage(err)})
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))
	w.WriteHeader(http.StatusOK)

	_, copyErr := io.Copy(w, a)
	a.Close()
	if copyErr != nil {
		output.Warn("download interrupted", "id", id, "err", copyErr)
		return
	}
	if err := s.archives.Release(id); err != nil {
		output.Warn("releasing archive", "id", id, "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// baseURL is the configured public URL, or the scheme and host the request
// arrived on.
func (s *Server) baseURL(r *http.Request) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) sendError(w http.ResponseWriter, status int, resp ErrorResponse) {
	s.sendJSON(w, status, resp)
}
