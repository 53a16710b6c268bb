// Package web serves the resume form as a server-rendered page, one form per browser session.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/backend"
	"github.com/spigell/resume-parser/internal/form"
	"github.com/spigell/resume-parser/internal/logger"
	"github.com/spigell/resume-parser/internal/view"
)

const (
	sessionCookie   = "resume_parser_session"
	maxMemory       = 32 << 20
	shutdownTimeout = 10 * time.Second
)

type Options struct {
	AllowedOrigins []string
	SessionTTL     time.Duration
}

type Server struct {
	router   chi.Router
	sessions *sessions
	logger   *zap.Logger
}

// New builds the web front-end. newController is called once per browser session.
func New(newController func() *form.Controller, log *zap.Logger, opts Options) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		sessions: newSessions(opts.SessionTTL, newController),
		logger:   logger.WithFields(log),
	}

	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(recoverer(s.logger))

	s.router.Get("/", s.handleIndex)
	s.router.Post("/analyze", s.handleAnalyze)
	s.router.Post("/reset", s.handleReset)
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Get("/state", s.handleState)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// controller resolves the session of the request, issuing a cookie for new sessions.
func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*form.Controller, *zap.Logger) {
	var id string
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		id = cookie.Value
	}

	sessionID, c := s.sessions.get(id)
	if sessionID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return c, s.logger.With(
		zap.String(logger.FieldSession, sessionID),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	c, log := s.controller(w, r)
	s.render(w, log, http.StatusOK, c.Snapshot())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	c, log := s.controller(w, r)

	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	candidate, err := readFile(r)
	if err != nil {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}

	if candidate != nil {
		if err := c.SelectFile(candidate); err != nil {
			s.render(w, log, statusFor(err), c.Snapshot())
			return
		}
	}

	if err := c.UpdateRequirements(r.FormValue("requirements")); err != nil {
		s.render(w, log, statusFor(err), c.Snapshot())
		return
	}

	if err := c.Submit(r.Context()); err != nil {
		log.Debug("submission finished with error", zap.Error(err))
		s.render(w, log, statusFor(err), c.Snapshot())
		return
	}

	s.render(w, log, http.StatusOK, c.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	c, _ := s.controller(w, r)
	c.Reset()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type stateResponse struct {
	File         *string                 `json:"file"`
	Requirements string                  `json:"requirements"`
	Status       string                  `json:"status"`
	IsLoading    bool                    `json:"isLoading"`
	Error        string                  `json:"error"`
	Results      *backend.AnalysisResult `json:"results"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	c, _ := s.controller(w, r)
	snap := c.Snapshot()

	resp := stateResponse{
		Requirements: snap.Requirements,
		Status:       snap.Status.Name(),
		IsLoading:    snap.IsLoading(),
		Error:        snap.Error(),
		Results:      snap.Results(),
	}
	if snap.File != nil {
		resp.File = &snap.File.Name
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) render(w http.ResponseWriter, log *zap.Logger, status int, snap form.Snapshot) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := view.HTML(w, snap); err != nil {
		log.Error("rendering page", zap.Error(err))
	}
}

// readFile returns the uploaded file part, or nil when the form carries none.
func readFile(r *http.Request) (*form.File, error) {
	f, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &form.File{
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Data:      data,
	}, nil
}

// statusFor maps form errors to HTTP statuses. The page is rendered either way.
func statusFor(err error) int {
	switch {
	case errors.Is(err, form.ErrBusy), errors.Is(err, form.ErrResultShown):
		return http.StatusConflict
	case errors.Is(err, form.ErrValidation), errors.Is(err, form.ErrWrongFileType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
