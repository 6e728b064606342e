package streamlit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-tessgen/pkg/render"
	"github.com/goliatone/go-tessgen/pkg/render/template"
	"github.com/goliatone/go-tessgen/pkg/render/template/gotemplate"
)

const (
	// Name identifies the renderer in the registry.
	Name = "streamlit"

	contentType = "text/x-python; charset=utf-8"
	appTemplate = "templates/app.py"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	engine    template.TemplateRenderer
	templates fs.FS
}

// WithEngine substitutes a custom template engine.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// Renderer emits a runnable Streamlit app script for a Tesseract.
type Renderer struct {
	engine    template.TemplateRenderer
	sanitizer *bluemonday.Policy
}

// Ensure the render contract is satisfied.
var _ render.Renderer = (*Renderer)(nil)

// Filters are process-global in pongo2, so they register once no matter how
// many renderers are constructed.
var filterOnce sync.Once
var filterErr error

func registerFilters(engine template.TemplateRenderer) error {
	filterOnce.Do(func() {
		filterErr = engine.RegisterFilter("py", func(input any, _ any) (any, error) {
			return PyLiteral(input)
		})
		if filterErr != nil {
			return
		}
		filterErr = engine.RegisterFilter("jsontext", func(input any, _ any) (any, error) {
			return JSONText(input)
		})
	})
	return filterErr
}

// New constructs a Renderer. Without options it renders the embedded app
// template through a pongo2 engine.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templates: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine := cfg.engine
	if engine == nil {
		created, err := gotemplate.New(gotemplate.WithFS(cfg.templates))
		if err != nil {
			return nil, fmt.Errorf("streamlit: create template engine: %w", err)
		}
		engine = created
	}
	if err := registerFilters(engine); err != nil {
		return nil, fmt.Errorf("streamlit: register filters: %w", err)
	}

	return &Renderer{
		engine:    engine,
		sanitizer: bluemonday.UGCPolicy(),
	}, nil
}

// Name returns the registry identifier.
func (r *Renderer) Name() string { return Name }

// ContentType describes the generated output.
func (r *Renderer) ContentType() string { return contentType }

// Render produces the app script.
func (r *Renderer) Render(ctx context.Context, data render.TemplateData, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if data.URL == "" {
		return nil, errors.New("streamlit: tesseract URL is required")
	}

	payload, err := r.buildContext(data, options)
	if err != nil {
		return nil, err
	}
	out, err := r.engine.RenderTemplate(appTemplate, payload)
	if err != nil {
		return nil, fmt.Errorf("streamlit: render app: %w", err)
	}
	return []byte(out), nil
}
