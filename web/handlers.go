package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/pivolan/go_utils"

	"github.com/pivolan/mbti_top10/dataset"
	"github.com/pivolan/mbti_top10/domain/models"
	"github.com/pivolan/mbti_top10/plot"
	"github.com/pivolan/mbti_top10/view"
)

// allowedExtensions are the upload file types accepted.
var allowedExtensions = append([]string{".csv"}, dataset.ArchiveExtensions...)

type page struct {
	View        view.View
	TableHTML   template.HTML
	MaxUploadMB int64
	TopN        int
}

// categoryFromRequest reads the "type" parameter; an empty value selects the first type.
func categoryFromRequest(r *http.Request) (models.Category, error) {
	code := r.FormValue("type")
	if code == "" {
		return models.Categories()[0], nil
	}
	return models.ParseCategory(code)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess := s.sessions.For(w, r)
	cat, err := categoryFromRequest(r)
	if err != nil {
		s.writePage(w, http.StatusBadRequest, view.Failed(err))
		return
	}
	s.writePage(w, http.StatusOK, s.render(r.Context(), sess, cat))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.sessions.For(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		uploadsTotal.WithLabelValues("rejected").Inc()
		s.writePage(w, http.StatusBadRequest, view.Failed(fmt.Errorf("error uploading file: %v", err)))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !go_utils.InArray(ext, allowedExtensions) {
		uploadsTotal.WithLabelValues("rejected").Inc()
		s.writePage(w, http.StatusBadRequest, view.Failed(fmt.Errorf("unsupported file type %q, expected one of %s",
			ext, strings.Join(allowedExtensions, " "))))
		return
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		uploadsTotal.WithLabelValues("rejected").Inc()
		s.writePage(w, http.StatusBadRequest, view.Failed(fmt.Errorf("error reading file: %v", err)))
		return
	}

	src := dataset.UploadSource(header.Filename, buf.Bytes())
	if _, err := sess.Loader.Load(r.Context(), src); err != nil {
		log.Printf("session %s: upload %s: %v", sess.ID, header.Filename, err)
		uploadsTotal.WithLabelValues("invalid").Inc()
		s.writePage(w, http.StatusUnprocessableEntity, view.Failed(err))
		return
	}
	sess.SetUpload(src)
	uploadsTotal.WithLabelValues("accepted").Inc()
	log.Printf("session %s: uploaded %s (%d bytes)", sess.ID, header.Filename, buf.Len())

	target := "/"
	if code := r.FormValue("type"); code != "" {
		target += "?" + url.Values{"type": {code}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleChart serves the interactive chart page embedded by the index.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	v, ok := s.chartView(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := plot.RenderHTML(w, v.Chart); err != nil {
		log.Printf("error rendering chart: %v", err)
	}
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	v, ok := s.chartView(w, r)
	if !ok {
		return
	}
	png, err := plot.RenderPNG(v.Chart)
	if errors.Is(err, plot.ErrNoBars) {
		http.Error(w, "no data to draw", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("error rendering png: %v", err)
		http.Error(w, "error rendering chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=top10_%s.png", v.Category))
	w.Write(png)
}

// chartView runs a render cycle and answers with the notice when it halted.
func (s *Server) chartView(w http.ResponseWriter, r *http.Request) (view.View, bool) {
	sess := s.sessions.For(w, r)
	cat, err := categoryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return view.View{}, false
	}
	v := s.render(r.Context(), sess, cat)
	if v.Halted {
		status := http.StatusUnprocessableEntity
		if v.Notice.Level == view.LevelWarning {
			status = http.StatusNotFound
		}
		http.Error(w, v.Notice.Text, status)
		return v, false
	}
	return v, true
}

func (s *Server) writePage(w http.ResponseWriter, status int, v view.View) {
	p := page{
		View:        v,
		MaxUploadMB: s.opts.MaxUploadBytes >> 20,
		TopN:        s.opts.TopN,
	}
	if !v.Halted {
		p.TableHTML = template.HTML(v.Table.RenderHTML())
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, p); err != nil {
		log.Printf("error rendering page: %v", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
