package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-tessgen/pkg/schema"
	"github.com/goliatone/go-tessgen/pkg/tesseract"
)

// DefaultSchemaName is where Tesseract publishes the input model for the
// apply endpoint.
const DefaultSchemaName = "Apply_InputSchema"

// ParseOptions controls schema location and heading style.
type ParseOptions struct {
	// SchemaName selects the entry under components.schemas holding the apply
	// input model. Defaults to DefaultSchemaName.
	SchemaName string

	// PrettyHeadings formats parameter names as headings (OAS titles, or the
	// key title-cased for containers). False keeps raw parameter names.
	PrettyHeadings bool
}

// ParseOption mutates ParseOptions during construction.
type ParseOption func(*ParseOptions)

// WithSchemaName overrides the components.schemas entry to flatten.
func WithSchemaName(name string) ParseOption {
	return func(opts *ParseOptions) {
		if name != "" {
			opts.SchemaName = name
		}
	}
}

// WithPlainHeadings keeps raw parameter names instead of pretty headings.
func WithPlainHeadings() ParseOption {
	return func(opts *ParseOptions) {
		opts.PrettyHeadings = false
	}
}

// NewParseOptions applies ParseOption functions over the defaults.
func NewParseOptions(options ...ParseOption) ParseOptions {
	cfg := ParseOptions{
		SchemaName:     DefaultSchemaName,
		PrettyHeadings: true,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Result pairs the document metadata with the flattened, path-adapted input
// fields.
type Result struct {
	Metadata Metadata
	Fields   []tesseract.UIField
}

// Parse runs the full read: metadata extraction, input schema location, ref
// resolution, flattening, and path adaption. Field order follows the schema
// author's property order.
func Parse(ctx context.Context, doc schema.Document, options ...ParseOption) (Result, error) {
	cfg := NewParseOptions(options...)

	raw := doc.Raw()
	if len(raw) == 0 {
		return Result{}, errors.New("openapi: document payload is empty")
	}

	md, err := ExtractMetadata(ctx, raw)
	if err != nil {
		return Result{}, err
	}

	root, err := tesseract.DecodeNode(raw)
	if err != nil {
		return Result{}, err
	}
	input, err := locateSchema(root, cfg.SchemaName)
	if err != nil {
		return Result{}, err
	}
	resolved, err := tesseract.ResolveRefs(input, root)
	if err != nil {
		return Result{}, err
	}
	props, ok := resolved.Get("properties")
	if !ok {
		return Result{}, fmt.Errorf("openapi: schema %q declares no properties", cfg.SchemaName)
	}
	fields, err := tesseract.Flatten(props, cfg.PrettyHeadings)
	if err != nil {
		return Result{}, err
	}

	return Result{Metadata: md, Fields: tesseract.AdaptPaths(fields)}, nil
}

func locateSchema(root tesseract.Node, name string) (tesseract.Node, error) {
	components, ok := root.Get("components")
	if !ok {
		return tesseract.Node{}, errors.New("openapi: document has no components block")
	}
	schemas, ok := components.Get("schemas")
	if !ok {
		return tesseract.Node{}, errors.New("openapi: document has no components.schemas block")
	}
	node, ok := schemas.Get(name)
	if !ok {
		return tesseract.Node{}, fmt.Errorf("openapi: components.schemas has no entry %q", name)
	}
	return node, nil
}
