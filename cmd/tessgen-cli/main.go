package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-tessgen/pkg/orchestrator"
	"github.com/goliatone/go-tessgen/pkg/render"
	"github.com/goliatone/go-tessgen/pkg/schema"
	"github.com/goliatone/go-tessgen/pkg/udf"
)

func main() {
	source := flag.String("source", "", "Tesseract base URL or OpenAPI document path")
	baseURL := flag.String("url", "", "Tesseract base URL the generated interface submits to (derived from -source when omitted)")
	output := flag.String("output", "", "output file (stdout if empty)")
	userCode := flag.String("user-code", "", "Python plotting module to embed into the interface")
	rendererName := flag.String("renderer", "streamlit", "renderer to use (streamlit, tui)")
	schemaName := flag.String("schema-name", "", "input schema component name (default Apply_InputSchema)")
	overlayDir := flag.String("overlay-dir", "", "directory of overlay files adjusting field presentation")
	themeName := flag.String("theme", "", "theme name (requires a configured theme provider)")
	themeVariant := flag.String("theme-variant", "", "theme variant")
	noSubmit := flag.Bool("no-submit", false, "run the Tesseract on every widget change instead of a submit button")
	exponentialFloats := flag.Bool("exponential-floats", false, "display float inputs in exponential notation")
	plainHeadings := flag.Bool("plain-headings", false, "label widgets with raw property keys instead of schema titles")
	testing := flag.Bool("testing", false, "generate with network calls disabled")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	var genOptions []orchestrator.Option
	if *overlayDir != "" {
		genOptions = append(genOptions, orchestrator.WithOverlayFS(os.DirFS(*overlayDir)))
	}
	genOptions = append(genOptions, orchestrator.WithUDFWarningHandler(func(w udf.Warning) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}))

	req := orchestrator.Request{
		Source:        src,
		URL:           *baseURL,
		Renderer:      *rendererName,
		SchemaName:    *schemaName,
		PlainHeadings: *plainHeadings,
		ThemeName:     *themeName,
		ThemeVariant:  *themeVariant,
	}

	if *userCode != "" {
		code, err := os.ReadFile(*userCode)
		if err != nil {
			log.Fatalf("Failed to read user code: %v", err)
		}
		req.UserCode = code
	}

	var renderOptions []render.Option
	if *noSubmit {
		renderOptions = append(renderOptions, render.WithoutSubmitButton())
	}
	if *exponentialFloats {
		renderOptions = append(renderOptions, render.WithExponentialFloats())
	}
	if *testing {
		renderOptions = append(renderOptions, render.WithTesting())
	}
	req.RenderOptions = renderOptions

	gen := orchestrator.New(genOptions...)
	script, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate interface: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, script, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Interface written to %s\n", *output)
	} else {
		fmt.Println(string(script))
	}
}

// parseSource accepts a Tesseract base URL, a direct document URL, or a local
// file path.
func parseSource(raw string) schema.Source {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if strings.HasSuffix(trimmed, ".json") {
			return schema.SourceFromURL(trimmed)
		}
		return schema.SourceFromTesseract(trimmed)
	}
	return schema.SourceFromFile(trimmed)
}
