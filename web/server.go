// Package web serves the Top-10 viewer over HTTP.
package web

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pivolan/mbti_top10/dataset"
	"github.com/pivolan/mbti_top10/domain/models"
	"github.com/pivolan/mbti_top10/ranking"
	"github.com/pivolan/mbti_top10/view"
)

//go:embed templates/index.html
var indexHTML string

type Options struct {
	// DataFile is read when the session has no upload.
	DataFile       string
	MaxUploadBytes int64
	// MaxUnpackedBytes bounds what an uploaded archive may expand to.
	MaxUnpackedBytes int64
	TopN             int
	// SessionIdle is how long an unused session is kept.
	SessionIdle time.Duration
}

type Server struct {
	opts     Options
	sessions *Sessions
	tmpl     *template.Template
}

func NewServer(opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	if opts.TopN <= 0 {
		opts.TopN = ranking.DefaultLimit
	}
	if opts.SessionIdle <= 0 {
		opts.SessionIdle = 2 * time.Hour
	}
	return &Server{
		opts:     opts,
		sessions: NewSessions().WithMaxUnpacked(opts.MaxUnpackedBytes),
		tmpl:     template.Must(template.New("index").Parse(indexHTML)),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/chart", s.handleChart)
	mux.HandleFunc("/chart.png", s.handleChartPNG)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// ListenAndServe runs the server until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.Printf("http shutdown: %v", err)
				}
				return
			case <-ticker.C:
				if n := s.sessions.Sweep(s.opts.SessionIdle); n > 0 {
					log.Printf("removed %d idle sessions", n)
				}
			}
		}
	}()

	log.Printf("listen on: http://localhost%s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// source picks the session upload first and the default file second.
func (s *Server) source(sess *Session) (dataset.Source, bool) {
	if src, ok := sess.Upload(); ok {
		return src, true
	}
	if s.opts.DataFile != "" && dataset.Exists(s.opts.DataFile) {
		return dataset.PathSource(s.opts.DataFile), true
	}
	return dataset.Source{}, false
}

// render runs one render cycle for the session.
func (s *Server) render(ctx context.Context, sess *Session, cat models.Category) view.View {
	state := view.State{Category: cat, Limit: s.opts.TopN}
	src, ok := s.source(sess)
	if !ok {
		state.LoadErr = models.ErrMissingData
	} else {
		state.Source = src.Label()
		state.Dataset, state.LoadErr = sess.Loader.Load(ctx, src)
		if state.LoadErr != nil {
			log.Printf("session %s: %v", sess.ID, state.LoadErr)
		}
	}

	v := view.Render(state)
	rendersTotal.WithLabelValues(string(v.Notice.Level)).Inc()
	return v
}
