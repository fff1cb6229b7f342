// Package web serves the aggregation dashboard for a single office over
// localhost; it intentionally has no auth in this mode. Every request reads
// the data CSVs fresh, so a completed ingest shows up on the next reload.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"kousu/aggregate"
	"kousu/config"
	"kousu/dataset"
	"kousu/record"
)

//go:embed templates/*.html
var templateFS embed.FS

// Loader reads the normalized records backing one request. The default
// implementation reads the configured CSV files.
type Loader interface {
	Work() ([]record.Work, error)
	Inspections() ([]record.Inspection, error)
	Estimates() ([]record.Estimate, error)
}

type fileLoader struct {
	cfg config.Config
}

func (l fileLoader) Work() ([]record.Work, error) {
	return dataset.LoadWork(l.cfg.WorkPath())
}

func (l fileLoader) Inspections() ([]record.Inspection, error) {
	return dataset.LoadInspections(l.cfg.InspectionPath())
}

func (l fileLoader) Estimates() ([]record.Estimate, error) {
	return dataset.LoadEstimates(l.cfg.EstimatePath())
}

type Server struct {
	loader Loader
	mux    *http.ServeMux
}

// NewServer builds the dashboard handler over the configured data files.
func NewServer(cfg config.Config) http.Handler {
	return NewServerWithLoader(fileLoader{cfg: cfg})
}

// NewServerWithLoader is the injection point used by tests.
func NewServerWithLoader(loader Loader) http.Handler {
	server := &Server{loader: loader}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("GET /graph", server.handleGraphPage)
	mux.HandleFunc("GET /worker", server.handleWorkerPage)
	mux.HandleFunc("GET /estimate", server.handleEstimatePage)
	mux.HandleFunc("GET /api/graph", server.handleAPIGraph)
	mux.HandleFunc("GET /api/worker", server.handleAPIWorker)
	mux.HandleFunc("GET /api/totals", server.handleAPITotals)
	mux.HandleFunc("GET /api/estimate", server.handleAPIEstimate)
	mux.HandleFunc("GET /api/options", server.handleAPIOptions)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := s.loader.Work()
	if err != nil {
		httpError(w, err)
		return
	}

	view := indexPageView{
		Title: "工数ダッシュボード",
		Terms: termOptions(entries),
	}
	if err := renderTemplate(w, "index.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleGraphPage(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		httpError(w, err)
		return
	}
	view := chartPageView{
		Title:    "作業種別グラフ " + sel.Label(),
		Endpoint: template.URL("/api/graph?" + r.URL.RawQuery),
		Stacked:  true,
	}
	if err := renderTemplate(w, "graph.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleWorkerPage(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		httpError(w, err)
		return
	}
	view := chartPageView{
		Title:    "作業者別グラフ " + sel.Label(),
		Endpoint: template.URL("/api/worker?" + r.URL.RawQuery),
		Stacked:  true,
	}
	if err := renderTemplate(w, "worker.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleEstimatePage(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		httpError(w, err)
		return
	}
	view := chartPageView{
		Title:    "見積・決定グラフ " + sel.Label(),
		Endpoint: template.URL("/api/estimate?" + r.URL.RawQuery),
	}
	if err := renderTemplate(w, "estimate.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIGraph(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		httpError(w, err)
		return
	}
	entries, err := s.loader.Work()
	if err != nil {
		httpError(w, err)
		return
	}

	pivot := aggregate.BuildCategoryPivot(entries, sel)
	resp := graphResponse{
		Title:   sel.Label(),
		Labels:  pivot.Labels,
		Series:  pivot.Series,
		Summary: pivot.Summary,
	}

	if aggregate.InspectionTriggered(sel) {
		inspections, err := s.loader.Inspections()
		if err != nil {
			httpError(w, err)
			return
		}
		totals := aggregate.AppendInspectionBreakdown(pivot, inspections, sel)
		resp.Series = pivot.Series
		resp.InspectionTotals = inspectionTotals(sel, totals)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIWorker(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		httpError(w, err)
		return
	}
	entries, err := s.loader.Work()
	if err != nil {
		httpError(w, err)
		return
	}

	pivot := aggregate.BuildWorkerPivot(entries, sel)
	writeJSON(w, http.StatusOK, graphResponse{
		Title:   sel.Label(),
		Labels:  pivot.Labels,
		Series:  pivot.Series,
		Summary: pivot.Summary,
	})
}

func (s *Server) handleAPITotals(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		httpError(w, err)
		return
	}
	entries, err := s.loader.Work()
	if err != nil {
		httpError(w, err)
		return
	}

	pivot := aggregate.BuildCategoryTotals(entries, sel)
	writeJSON(w, http.StatusOK, graphResponse{
		Title:   sel.Label(),
		Labels:  pivot.Labels,
		Series:  pivot.Series,
		Summary: pivot.Summary,
	})
}

func (s *Server) handleAPIEstimate(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		httpError(w, err)
		return
	}
	entries, err := s.loader.Estimates()
	if err != nil {
		httpError(w, err)
		return
	}

	pivot := aggregate.BuildEstimatePivot(entries, sel)
	writeJSON(w, http.StatusOK, estimateResponse{
		Title:         sel.Label(),
		EstimatePivot: pivot,
		Staff:         aggregate.StaffAxis(entries),
	})
}

func (s *Server) handleAPIOptions(w http.ResponseWriter, r *http.Request) {
	entries, err := s.loader.Work()
	if err != nil {
		httpError(w, err)
		return
	}
	estimates, err := s.loader.Estimates()
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, optionsResponse{
		Terms:      aggregate.TermAxis(entries),
		Categories: aggregate.CategoryAxis(entries),
		Workers:    aggregate.WorkerAxis(entries),
		Staff:      aggregate.StaffAxis(estimates),
	})
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

// httpError maps engine errors onto HTTP statuses: malformed selections are
// the caller's fault, an unreadable data file means ingest has not run yet.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var schemaErr *dataset.SchemaError
	switch {
	case errors.Is(err, aggregate.ErrSelection):
		status = http.StatusBadRequest
	case errors.Is(err, dataset.ErrFileRead):
		status = http.StatusServiceUnavailable
	case errors.As(err, &schemaErr):
		status = http.StatusInternalServerError
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
