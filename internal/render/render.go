// Package render executes the site's html/template pages. Templates are
// embedded; in development they are reparsed from disk on every render.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Project-Narvex/narvex-web/internal/i18n"
)

//go:embed templates
var embedded embed.FS

const (
	layoutFile  = "layout.html"
	partialsDir = "partials"
	pagesDir    = "pages"
	rootName    = "base"
)

// Config configures a Renderer.
type Config struct {
	// Dir, when set with Development, is reparsed on each render.
	Dir         string
	Development bool
	Bundle      *i18n.Bundle
	Logger      *zap.Logger
}

// Renderer executes a page template inside the shared layout.
type Renderer struct {
	fsys   fs.FS
	reload bool
	funcs  template.FuncMap
	logger *zap.Logger

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// New parses every page once. In development with a Dir, parsing is repeated
// per render and the initial parse only validates the tree.
func New(cfg Config) (*Renderer, error) {
	if cfg.Bundle == nil {
		return nil, errors.New("render: i18n bundle is required")
	}
	var fsys fs.FS
	reload := false
	if cfg.Development && strings.TrimSpace(cfg.Dir) != "" {
		fsys = os.DirFS(cfg.Dir)
		reload = true
	} else {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("render: embedded templates: %w", err)
		}
		fsys = sub
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{
		fsys:   fsys,
		reload: reload,
		funcs:  Funcs(cfg.Bundle),
		logger: logger,
	}
	pages, err := r.parseAll()
	if err != nil {
		return nil, err
	}
	r.pages = pages
	return r, nil
}

// Pages lists the parsed page names.
func (r *Renderer) Pages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	return names
}

func (r *Renderer) parseAll() (map[string]*template.Template, error) {
	entries, err := fs.ReadDir(r.fsys, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("render: read pages: %w", err)
	}
	out := make(map[string]*template.Template, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".html")
		t, err := r.parse(name)
		if err != nil {
			return nil, err
		}
		out[name] = t
	}
	if len(out) == 0 {
		return nil, errors.New("render: no page templates found")
	}
	return out, nil
}

// parse builds one page set: layout, every partial, then the page itself.
func (r *Renderer) parse(page string) (*template.Template, error) {
	files := []string{layoutFile}
	partials, err := fs.Glob(r.fsys, path.Join(partialsDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("render: glob partials: %w", err)
	}
	files = append(files, partials...)
	files = append(files, path.Join(pagesDir, page+".html"))

	t, err := template.New(page).Funcs(r.funcs).ParseFS(r.fsys, files...)
	if err != nil {
		return nil, fmt.Errorf("render: parse %s: %w", page, err)
	}
	return t, nil
}

func (r *Renderer) lookup(page string) (*template.Template, error) {
	if r.reload {
		return r.parse(page)
	}
	r.mu.RLock()
	t, ok := r.pages[page]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("render: unknown page %q", page)
	}
	return t, nil
}

// Render writes page executed with data to w.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, err := r.lookup(page)
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, rootName, data); err != nil {
		return fmt.Errorf("render: execute %s: %w", page, err)
	}
	return nil
}

// HTML renders page into a buffer and writes it with status. A template
// failure is logged and answered with 500 so a half-written page never
// reaches the client.
func (r *Renderer) HTML(w http.ResponseWriter, req *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := r.Render(&buf, page, data); err != nil {
		r.logger.Error("render failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if req.Method == http.MethodHead {
		return
	}
	_, _ = buf.WriteTo(w)
}
