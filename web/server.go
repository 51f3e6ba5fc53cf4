// Package web serves the screening questionnaire over HTTP.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/sink"
	log "github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	defaultStorageName = "Google Sheets"
	shutdownTimeout    = 10 * time.Second
)

// Server handles form and API submissions. It holds no per-submission state.
type Server struct {
	scorer      screening.Scorer
	sink        sink.Sink
	location    *time.Location
	now         func() time.Time
	logger      log.FieldLogger
	storageName string

	page     *template.Template
	markdown goldmark.Markdown
	mux      *http.ServeMux
}

type Option func(*Server)

// WithClock overrides the submission clock.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(logger log.FieldLogger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithStorageName sets the storage name shown in save confirmations and warnings.
// A sink.Multi names its own entries.
func WithStorageName(name string) Option {
	return func(s *Server) { s.storageName = name }
}

// New creates a Server. A nil sink means results are only displayed.
// A nil location means UTC.
func New(scorer screening.Scorer, resultSink sink.Sink, location *time.Location, opts ...Option) (*Server, error) {
	page, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if location == nil {
		location = time.UTC
	}
	s := &Server{
		scorer:      scorer,
		sink:        resultSink,
		location:    location,
		now:         time.Now,
		logger:      log.StandardLogger(),
		storageName: defaultStorageName,
		page:        page,
		markdown:    goldmark.New(),
		mux:         http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /{$}", s.handleForm)
	s.mux.HandleFunc("POST /{$}", s.handleFormSubmit)
	s.mux.HandleFunc("GET /api/v1/questions", s.handleQuestions)
	s.mux.HandleFunc("POST /api/v1/screenings", s.handleScreening)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.WithFields(log.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   rec.status,
		"duration": time.Since(start),
	}).Debug("Handled request")
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("Serving questionnaire")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

// score validates and scores the answers. Nothing is stored yet.
func (s *Server) score(answers []screening.Answer) (submission screening.Submission, err error) {
	submission, err = screening.Submit(s.scorer, answers, s.now())
	if err != nil {
		return screening.Submission{}, err
	}
	s.logger.WithFields(log.Fields{
		"submission": submission.ID(),
		"verdict":    submission.Verdict().Label(),
		"yes":        submission.YesCount(),
	}).Info("Scored submission")
	return submission, nil
}

// save appends the record to every sink and reports each outcome.
// The append is not cancelled with the request.
func (s *Server) save(ctx context.Context, record screening.Record) []sink.Result {
	if s.sink == nil {
		return nil
	}
	results := sink.AppendEach(context.WithoutCancel(ctx), s.sink, s.storageName, record)
	for _, r := range sink.Failed(results) {
		s.logger.WithError(r.Err).WithFields(log.Fields{
			"submission": record.SubmissionID,
			"storage":    r.Name,
		}).Error("Failed to save submission")
	}
	return results
}

func (s *Server) renderMarkdown(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
