package ui

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"primegaps/adapters/figures"
	"primegaps/internal/config"
	internalerrors "primegaps/internal/errors"
	"primegaps/internal/report"
)

// App is the results viewer: it serves the latest run summary and artifact
// downloads over HTTP. It renders what is already on disk and never triggers
// analysis.
type App struct {
	router *chi.Mux
	paths  config.PathConfig
	port   string
}

// NewApp creates the viewer over the configured artifact directories
func NewApp(cfg *config.Config) *App {
	app := &App{
		router: chi.NewRouter(),
		paths:  cfg.Paths,
		port:   cfg.Server.Port,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleSummary)
	a.router.Get("/artifacts", a.handleArtifactList)
	a.router.Get("/artifacts/{name}", a.handleArtifactDownload)
	a.router.Get("/figures/latest", a.handleLatestFigures)
}

// Start runs the HTTP server until it fails
func (a *App) Start() error {
	return http.ListenAndServe(":"+a.port, a.router)
}

// Router exposes the handler for tests
func (a *App) Router() http.Handler {
	return a.router
}

// handleSummary renders the latest markdown summary as HTML
func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	path, err := report.Latest(a.paths.SummaryDir)
	if err != nil {
		a.renderMissing(w, "No analysis summary found. Run the analyze command first.")
		return
	}

	md, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, "failed to read summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!DOCTYPE html><html><head><title>Prime Gap Analysis</title></head><body>")
	w.Write(report.RenderHTML(md))
	fmt.Fprint(w, `<hr><p><a href="/artifacts">Artifacts</a> · <a href="/figures/latest">Figure workbook</a></p>`)
	fmt.Fprint(w, "</body></html>")
}

// handleArtifactList lists the CSV artifacts across raw and processed dirs
func (a *App) handleArtifactList(w http.ResponseWriter, r *http.Request) {
	var names []string
	for _, dir := range []string{a.paths.RawDir(), a.paths.ProcessedDir()} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".csv") {
				names = append(names, entry.Name())
			}
		}
	}
	if len(names) == 0 {
		a.renderMissing(w, "No artifacts found. Run the analyze command first.")
		return
	}
	sort.Strings(names)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!DOCTYPE html><html><body><h1>Artifacts</h1><ul>")
	for _, name := range names {
		fmt.Fprintf(w, `<li><a href="/artifacts/%s">%s</a></li>`, name, name)
	}
	fmt.Fprint(w, "</ul></body></html>")
}

// handleArtifactDownload serves one CSV artifact by filename
func (a *App) handleArtifactDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".csv") {
		http.Error(w, "invalid artifact name", http.StatusBadRequest)
		return
	}

	for _, dir := range []string{a.paths.RawDir(), a.paths.ProcessedDir()} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			w.Header().Set("Content-Type", "text/csv")
			http.ServeFile(w, r, path)
			return
		}
	}
	http.Error(w, internalerrors.NotFound(name).Error(), http.StatusNotFound)
}

// handleLatestFigures serves the newest figure workbook
func (a *App) handleLatestFigures(w http.ResponseWriter, r *http.Request) {
	path, err := figures.LatestWorkbook(a.paths.FiguresDir)
	if err != nil {
		a.renderMissing(w, "No figure workbook found. Run the analyze or figures command first.")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}

func (a *App) renderMissing(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, "<!DOCTYPE html><html><body><p>%s</p></body></html>", message)
}
