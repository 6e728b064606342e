package render

import (
	"context"

	"github.com/goliatone/go-tessgen/pkg/openapi"
	"github.com/goliatone/go-tessgen/pkg/tesseract"
	"github.com/goliatone/go-tessgen/pkg/udf"
)

// TemplateData is everything a renderer needs to produce an interface for a
// running Tesseract: header metadata, the flattened input fields in
// declaration order, the instance URL, and the optional plotting functions.
type TemplateData struct {
	Metadata     openapi.Metadata    `json:"metadata"`
	Fields       []tesseract.UIField `json:"fields"`
	URL          string              `json:"url"`
	NeedsPyVista bool                `json:"needs_pyvista"`
	UDFSource    string              `json:"udf_defs"`
	UDFs         *udf.Register       `json:"udfs"`
}

// Renderer converts TemplateData into a byte representation (a Streamlit app
// script, terminal output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, data TemplateData, options Options) ([]byte, error)
}
