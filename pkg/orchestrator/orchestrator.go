package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	internalLoader "github.com/goliatone/go-tessgen/internal/loader"
	"github.com/goliatone/go-tessgen/pkg/openapi"
	"github.com/goliatone/go-tessgen/pkg/overlay"
	"github.com/goliatone/go-tessgen/pkg/render"
	"github.com/goliatone/go-tessgen/pkg/renderers/streamlit"
	"github.com/goliatone/go-tessgen/pkg/renderers/tui"
	"github.com/goliatone/go-tessgen/pkg/schema"
	"github.com/goliatone/go-tessgen/pkg/udf"
)

const defaultRendererName = streamlit.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader openapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithOverlayFS supplies an fs.FS holding overlay documents that adjust field
// presentation.
func WithOverlayFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.overlayFS = fsys
	}
}

// WithUDFWarningHandler registers a callback for non-fatal findings from the
// user code scan, such as functions missing docstrings.
func WithUDFWarningHandler(fn func(udf.Warning)) Option {
	return func(o *Orchestrator) {
		o.onWarning = fn
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to rendered
// output. It applies sensible defaults (streamlit renderer, survey-backed TUI
// as an alternative) while remaining open to dependency injection.
type Orchestrator struct {
	loader          openapi.Loader
	registry        *render.Registry
	defaultRenderer string
	overlayFS       fs.FS
	overlays        *overlay.Store
	onWarning       func(udf.Warning)
	themeSelector   themeSelector
	themeFallbacks  map[string]string
	defaultTheme    string
	defaultVariant  string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a Tesseract interface.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source schema.Source

	// Document allows callers to bypass the loader when they already hold the
	// raw payload.
	Document *schema.Document

	// URL is the Tesseract base URL the generated interface submits to. When
	// empty it is derived from a URL source.
	URL string

	// UserCode holds an optional Python plotting module whose functions are
	// embedded into the generated interface.
	UserCode []byte

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// SchemaName overrides the input schema component looked up in the
	// document.
	SchemaName string

	// PlainHeadings uses raw property keys for widget labels instead of the
	// schema's title annotations.
	PlainHeadings bool

	// ThemeName and ThemeVariant select a theme when a selector is configured.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request rendering instructions. Defaults
	// (submit button on) apply to whatever is not specified.
	RenderOptions []render.Option
}

// Generate executes the loader, parser, overlay, and user code stages and
// returns the renderer's output.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	parseOptions := []openapi.ParseOption{}
	if req.SchemaName != "" {
		parseOptions = append(parseOptions, openapi.WithSchemaName(req.SchemaName))
	}
	if req.PlainHeadings {
		parseOptions = append(parseOptions, openapi.WithPlainHeadings())
	}

	result, err := openapi.Parse(ctx, doc, parseOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse document: %w", err)
	}

	fields := result.Fields
	if !o.overlays.Empty() {
		fields = o.overlays.Apply(fields)
	}

	data := render.TemplateData{
		Metadata: result.Metadata,
		Fields:   fields,
		URL:      o.resolveURL(req, doc),
	}

	if len(req.UserCode) > 0 {
		register, warnings, err := udf.Parse(req.UserCode)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: scan user code: %w", err)
		}
		if o.onWarning != nil {
			for _, warning := range warnings {
				o.onWarning(warning)
			}
		}
		data.UDFSource = string(req.UserCode)
		data.UDFs = &register
		data.NeedsPyVista = register.NeedsPyVista()
	}

	options := render.NewOptions(req.RenderOptions...)
	if options.Theme == nil {
		cfg, err := o.themeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, data, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

// resolveURL prefers an explicit URL, then derives the Tesseract base from a
// URL source by stripping the document path.
func (o *Orchestrator) resolveURL(req Request, doc schema.Document) string {
	if req.URL != "" {
		return req.URL
	}
	src := doc.Source()
	if src == nil || src.Kind() != schema.SourceKindURL {
		return ""
	}
	location := src.Location()
	location = strings.TrimSuffix(location, "/openapi.json")
	return strings.TrimRight(location, "/")
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(openapi.NewLoaderOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()

		appRenderer, err := streamlit.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(appRenderer)
		}

		terminalRenderer, err := tui.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: tui renderer: %w", err)
		} else {
			o.registry.MustRegister(terminalRenderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if o.overlays == nil {
		store, err := overlay.LoadFS(o.overlayFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load overlays: %w", err)
		} else {
			o.overlays = store
		}
	}

	o.defaultsApplied = true
}
