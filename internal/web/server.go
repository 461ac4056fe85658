package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/savibeshop/savibe/internal/animator"
	"github.com/savibeshop/savibe/internal/content"
	"github.com/savibeshop/savibe/internal/export"
	"github.com/savibeshop/savibe/internal/particles"
	"github.com/savibeshop/savibe/internal/ui"
)

const streamPath = "/api/stream"

// Server is the local preview of the landing page. It renders the page with
// the animator's current field and streams every tick to the browser.
type Server struct {
	anim            *animator.Animator
	hub             *Hub
	page            *content.Page
	log             *zap.Logger
	now             func() time.Time
	mux             *http.ServeMux
	scrollThreshold int
}

type Option func(*Server)

// WithScrollThreshold sets the offset in pixels past which the page's navbar
// turns solid.
func WithScrollThreshold(px int) Option {
	return func(s *Server) { s.scrollThreshold = px }
}

func New(anim *animator.Animator, hub *Hub, page *content.Page, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		anim:            anim,
		hub:             hub,
		page:            page,
		log:             log,
		now:             time.Now,
		mux:             http.NewServeMux(),
		scrollThreshold: ui.DefaultScrollThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /api/field", s.handleField)
	s.mux.HandleFunc("POST /api/field", s.handleReinit)
	s.mux.HandleFunc("GET "+streamPath, s.handleStream)
	s.mux.HandleFunc("GET /field.svg", s.handleSVG)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return s
}

func (s *Server) Handler() http.Handler { return s.logRequests(s.mux) }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := export.NewPageData(s.page, s.anim.Field(), s.now().Year())
	data.ScrollThreshold = s.scrollThreshold
	data.Live = true
	data.StreamURL = streamPath

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.WriteHTML(w, data); err != nil {
		s.log.Error("render page", zap.Error(err))
	}
}

type particleJSON struct {
	ID      int     `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	FloatS  float64 `json:"float_s"`
}

type fieldJSON struct {
	Generation uint64         `json:"generation"`
	Ticks      int            `json:"ticks"`
	Particles  []particleJSON `json:"particles"`
}

func toJSON(f particles.Field, ticks int) fieldJSON {
	out := fieldJSON{
		Generation: f.Generation,
		Ticks:      ticks,
		Particles:  make([]particleJSON, len(f.Particles)),
	}
	for i, p := range f.Particles {
		out.Particles[i] = particleJSON{
			ID:      p.ID,
			X:       p.Position.X,
			Y:       p.Position.Y,
			Size:    p.Size,
			Color:   string(p.Color),
			Opacity: p.Opacity,
			VX:      p.Velocity.X,
			VY:      p.Velocity.Y,
			FloatS:  p.FloatPeriod.Seconds(),
		}
	}
	return out
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toJSON(s.anim.Field(), s.anim.Ticks()))
}

// handleReinit replaces the field. Form values: count, palette (comma
// separated hex colors). Missing values keep the current setting.
func (s *Server) handleReinit(w http.ResponseWriter, r *http.Request) {
	cfg := s.anim.Config()
	count, palette := cfg.Count, cfg.Palette

	if v := r.FormValue("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > particles.MaxCount {
			http.Error(w, fmt.Sprintf("count must be an integer in [0, %d]", particles.MaxCount), http.StatusBadRequest)
			return
		}
		count = n
	}
	if v := r.FormValue("palette"); v != "" {
		p, err := particles.ParsePalette(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		palette = p
	}

	if err := s.anim.Reinitialize(count, palette); err != nil {
		s.log.Error("reinitialize field", zap.Error(err))
		http.Error(w, "reinitialize failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toJSON(s.anim.Field(), s.anim.Ticks()))
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case f := <-ch:
			data, err := json.Marshal(toJSON(f, 0))
			if err != nil {
				s.log.Error("encode field", zap.Error(err))
				return
			}
			if _, err := fmt.Fprintf(w, "event: field\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(export.FieldToSVG(s.anim.Field(), 1280, 720, "#3B0764")))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
