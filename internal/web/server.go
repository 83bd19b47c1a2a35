// Package web serves the report as an HTML form.
//
// A Server owns exactly one report session. Every handler takes the
// server's lock for the duration of its access to the report, so concurrent
// requests observe a consistent report and total sales is always in step
// with the rows.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ginjaninja78/daily-report/internal/config"
	"github.com/ginjaninja78/daily-report/internal/converter"
	"github.com/ginjaninja78/daily-report/internal/mailer"
	"github.com/ginjaninja78/daily-report/internal/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Sender delivers an e-mail message.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) (*mailer.Response, error)
}

// Server is the HTTP front end for one report.
type Server struct {
	cfg       *config.MainConfig
	converter *converter.Converter
	sender    Sender
	logger    *slog.Logger
	tmpl      *template.Template
	now       func() time.Time

	mu     sync.Mutex
	report *report.Report
}

// NewServer creates a Server for rep.
func NewServer(cfg *config.MainConfig, rep *report.Report, conv *converter.Converter, sender Sender, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
	return &Server{
		cfg:       cfg,
		converter: conv,
		sender:    sender,
		logger:    logger,
		tmpl:      tmpl,
		now:       time.Now,
		report:    rep,
	}
}

// Routes returns the router for the form and its actions.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/save", s.handleSave)
	r.Post("/rows", s.handleSetRow)
	r.Post("/summary", s.handleSummary)
	r.Get("/totals", s.handleTotals)
	r.Post("/import", s.handleImport)
	r.Get("/export/{format}", s.handleExport)
	r.Get("/print", s.handlePrint)
	r.Post("/email", s.handleEmail)
	r.Post("/clear", s.handleClear)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		}
	}()

	s.logger.Info("starting report server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	s.logger.Info("server stopped")
	return nil
}
