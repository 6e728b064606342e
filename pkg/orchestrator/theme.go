package orchestrator

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

type themeSelector = theme.ThemeSelector

// WithThemeSelector registers a go-theme selector so theme/variant choices
// can be resolved into renderer configuration ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider registers a go-theme provider together with the default
// theme and variant applied when a request does not name one. The provider
// must also implement theme.ThemeSelector, which the go-theme registry does.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if selector, ok := provider.(theme.ThemeSelector); ok {
			o.themeSelector = selector
		}
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithThemeFallbacks supplies partials used when a theme manifest does not
// declare its own.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		if len(fallbacks) == 0 {
			return
		}
		if o.themeFallbacks == nil {
			o.themeFallbacks = make(map[string]string, len(fallbacks))
		}
		for key, value := range fallbacks {
			o.themeFallbacks[key] = value
		}
	}
}

// themeConfig resolves a theme selection into the renderer-facing config.
// Returns nil when no selector is configured or no theme is requested.
func (o *Orchestrator) themeConfig(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.defaultTheme
	}
	if variant == "" {
		variant = o.defaultVariant
	}
	if name == "" {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: copyMap(o.themeFallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	assetPrefix := ""
	assetFiles := map[string]string{}

	if manifest := selection.Manifest; manifest != nil {
		mergeMap(cfg.Partials, manifest.Templates)
		mergeMap(cfg.Tokens, manifest.Tokens)
		assetPrefix = manifest.Assets.Prefix
		mergeMap(assetFiles, manifest.Assets.Files)

		if override, ok := manifest.Variants[selection.Variant]; ok {
			mergeMap(cfg.Partials, override.Templates)
			mergeMap(cfg.Tokens, override.Tokens)
			if override.Assets.Prefix != "" {
				assetPrefix = override.Assets.Prefix
			}
			mergeMap(assetFiles, override.Assets.Files)
		}
	}

	for key, value := range cfg.Tokens {
		varName := key
		if !strings.HasPrefix(varName, "--") {
			varName = "--" + varName
		}
		cfg.CSSVars[varName] = value
	}

	cfg.AssetURL = func(key string) string {
		file, ok := assetFiles[key]
		if !ok {
			return ""
		}
		return path.Join(assetPrefix, file)
	}

	return cfg, nil
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeMap(dst map[string]string, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}
