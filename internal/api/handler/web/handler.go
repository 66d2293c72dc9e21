// internal/api/handler/web/handler.go
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/newthinker/stratdeck/internal/catalog"
	"github.com/newthinker/stratdeck/internal/dashboard"
	"github.com/newthinker/stratdeck/internal/metrics"
	"github.com/newthinker/stratdeck/internal/storage/artifact"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

// pages lists the page templates; each is parsed together with layout.html.
var pages = []string{"home.html", "strategy.html"}

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Options carries the collaborators of the web handler.
type Options struct {
	Loader        catalog.Loader
	Builder       *dashboard.Builder
	Reports       artifact.Store
	ReportsPrefix string
	HomePath      string
	Logger        *zap.Logger
	Metrics       *metrics.Registry // optional
}

// Handler provides web UI handlers with template rendering
type Handler struct {
	// pageTemplates holds separate template instances for each page
	// Each instance contains layout.html + the specific page template
	pageTemplates map[string]*template.Template

	loader        catalog.Loader
	builder       *dashboard.Builder
	reports       artifact.Store
	reportsPrefix string
	homePath      string
	logger        *zap.Logger
	metrics       *metrics.Registry
}

// NewHandler creates a new web handler with templates loaded from the given directory.
// If templatesDir is empty, it falls back to embedded templates.
func NewHandler(templatesDir string, opts Options) (*Handler, error) {
	if templatesDir != "" {
		return NewHandlerWithFS(os.DirFS(templatesDir), opts)
	}
	return NewHandlerWithFS(TemplateFS(), opts)
}

// NewHandlerWithFS creates a new web handler using a custom filesystem.
// This is useful for testing or custom template sources.
func NewHandlerWithFS(fsys fs.FS, opts Options) (*Handler, error) {
	pageTemplates := make(map[string]*template.Template)

	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}

	if opts.Builder == nil {
		opts.Builder = dashboard.NewBuilder(nil, nil, opts.Logger, opts.Metrics)
	}
	if opts.HomePath == "" {
		opts.HomePath = "/"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Handler{
		pageTemplates: pageTemplates,
		loader:        opts.Loader,
		builder:       opts.Builder,
		reports:       opts.Reports,
		reportsPrefix: opts.ReportsPrefix,
		homePath:      opts.HomePath,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}, nil
}

// render executes the specified page template with the given data
func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	tmpl, ok := h.pageTemplates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error("rendering template", zap.String("page", page), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) recordPage(page, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordPageRender(page, outcome)
	}
}

// TemplateFS returns the embedded template filesystem for external use.
func TemplateFS() fs.FS {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// This should never happen with valid embed directive
		return templateFS
	}
	return subFS
}
