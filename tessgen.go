// Package tessgen generates user interfaces for Tesseract services from
// their OpenAPI documents. The root package re-exports the orchestrator entry
// points so most callers only need a single import.
package tessgen

import (
	"context"
	"io/fs"

	internalLoader "github.com/goliatone/go-tessgen/internal/loader"
	"github.com/goliatone/go-tessgen/pkg/openapi"
	"github.com/goliatone/go-tessgen/pkg/orchestrator"
	"github.com/goliatone/go-tessgen/pkg/renderers/streamlit"
	"github.com/goliatone/go-tessgen/pkg/schema"
	theme "github.com/goliatone/go-theme"
)

// Request aliases the orchestrator request so callers can stay on the root
// import.
type Request = orchestrator.Request

// Option aliases the orchestrator option type.
type Option = orchestrator.Option

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...openapi.LoaderOption) openapi.Loader {
	cfg := openapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// GenerateApp fetches a Tesseract's OpenAPI document from its base URL and
// renders the default Streamlit app script. It is the simplest entry point
// for callers that just want a runnable interface.
func GenerateApp(ctx context.Context, baseURL string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source: schema.SourceFromTesseract(baseURL),
	})
}

// Generate runs the pipeline for a fully specified request.
func Generate(ctx context.Context, req orchestrator.Request, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, req)
}

// EmbeddedTemplates exposes the built-in Streamlit app templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return streamlit.TemplatesFS()
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider registers a go-theme provider plus the default theme and
// variant applied when a request does not name one.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
