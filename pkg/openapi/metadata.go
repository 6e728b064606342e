package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// applyPath is the POST endpoint every Tesseract exposes; its description is
// the fallback when the document info carries none.
const applyPath = "/apply"

// Metadata is the header information rendered above the generated form.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// ExtractMetadata reads title, version, and description from the document
// info block. Tesseract documents frequently leave info.description empty, in
// which case the description of POST /apply stands in.
func ExtractMetadata(ctx context.Context, raw []byte) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}
	if len(raw) == 0 {
		return Metadata{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return Metadata{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Info == nil {
		return Metadata{}, errors.New("openapi: document has no info block")
	}

	md := Metadata{
		Title:       spec.Info.Title,
		Description: spec.Info.Description,
		Version:     spec.Info.Version,
	}
	if md.Description == "" {
		md.Description, err = applyDescription(spec)
		if err != nil {
			return Metadata{}, err
		}
	}
	return md, nil
}

func applyDescription(spec *openapi3.T) (string, error) {
	if spec.Paths != nil {
		if item := spec.Paths.Find(applyPath); item != nil && item.Post != nil {
			return item.Post.Description, nil
		}
	}
	return "", fmt.Errorf("openapi: no info description and no POST %s to fall back to", applyPath)
}
