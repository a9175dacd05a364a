package render

import (
	"sync"

	"github.com/cbroglie/mustache"

	"github.com/rqpush/rqpush/internal/domain"
)

// maxCached bounds the parsed-template cache.
const maxCached = 256

type cacheKey struct {
	kind domain.TemplateKind
	tmpl string
}

// MustacheRenderer implements domain.Renderer with mustache templates.
// Missing keys render empty; sections iterate list values. Parsed
// templates are cached and shared between calls.
type MustacheRenderer struct {
	mu     sync.Mutex
	parsed map[cacheKey]*mustache.Template
}

// New creates a MustacheRenderer.
func New() *MustacheRenderer {
	return &MustacheRenderer{parsed: make(map[cacheKey]*mustache.Template)}
}

// Render parses and executes tmpl. Text templates never HTML-escape;
// HTML templates escape {{x}} and leave {{{x}}} raw.
func (r *MustacheRenderer) Render(kind domain.TemplateKind, tmpl string, bindings map[string]any) (string, error) {
	t, err := r.parse(kind, tmpl)
	if err != nil {
		return "", &domain.TemplateRenderError{Template: tmpl, Err: err}
	}
	out, err := t.Render(bindings)
	if err != nil {
		return "", &domain.TemplateRenderError{Template: tmpl, Err: err}
	}
	return out, nil
}

// Cached reports how many parsed templates are held.
func (r *MustacheRenderer) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.parsed)
}

func (r *MustacheRenderer) parse(kind domain.TemplateKind, tmpl string) (*mustache.Template, error) {
	key := cacheKey{kind: kind, tmpl: tmpl}

	r.mu.Lock()
	t, ok := r.parsed[key]
	r.mu.Unlock()
	if ok {
		return t, nil
	}

	t, err := mustache.ParseStringRaw(tmpl, kind == domain.TemplateText)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if len(r.parsed) < maxCached {
		r.parsed[key] = t
	}
	r.mu.Unlock()
	return t, nil
}
