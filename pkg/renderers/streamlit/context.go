package streamlit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-tessgen/pkg/render"
	"github.com/goliatone/go-tessgen/pkg/tesseract"
	"github.com/goliatone/go-tessgen/pkg/udf"
)

// JSONText renders a value as a Python string literal holding its JSON
// encoding. Text widgets that hold structured defaults use it, because their
// value kwarg wants the JSON source text rather than a Python structure.
func JSONText(value any) (string, error) {
	if value == nil {
		return "''", nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("streamlit: encode default: %w", err)
	}
	return pyString(string(encoded)), nil
}

// buildContext assembles the flat template context. Field descriptors pass
// through a JSON round-trip so the template addresses them by their wire
// names, and user-facing text is sanitized before it reaches markdown calls.
func (r *Renderer) buildContext(data render.TemplateData, options render.Options) (map[string]any, error) {
	fields := make([]map[string]any, 0, len(data.Fields))
	for _, field := range data.Fields {
		entry, err := r.fieldContext(field, options)
		if err != nil {
			return nil, err
		}
		fields = append(fields, entry)
	}

	udfs := data.UDFs
	if udfs == nil {
		udfs = &udf.Register{}
	}

	metadata := data.Metadata
	metadata.Title = r.sanitizer.Sanitize(metadata.Title)
	metadata.Description = r.sanitizer.Sanitize(metadata.Description)

	return map[string]any{
		"metadata":           metadata,
		"fields":             fields,
		"url":                data.URL,
		"needs_pyvista":      data.NeedsPyVista || udfs.NeedsPyVista(),
		"udf_defs":           data.UDFSource,
		"udfs":               udfs,
		"submit":             options.SubmitButton,
		"exponential_floats": options.ExponentialFloats,
		"test":               options.Testing,
		"theme":              buildThemeContext(options.Theme),
	}, nil
}

func (r *Renderer) fieldContext(field tesseract.UIField, options render.Options) (map[string]any, error) {
	encoded, err := json.Marshal(field)
	if err != nil {
		return nil, fmt.Errorf("streamlit: encode field %q: %w", field.Key, err)
	}
	entry := map[string]any{}
	if err := json.Unmarshal(encoded, &entry); err != nil {
		return nil, fmt.Errorf("streamlit: decode field %q: %w", field.Key, err)
	}

	if desc := strings.TrimSpace(r.sanitizer.Sanitize(field.Description)); desc != "" {
		entry["description"] = desc
	} else {
		entry["description"] = nil
	}

	if value, ok := options.Values[field.Key]; ok {
		entry["default"] = value
		entry["has_default"] = true
	}

	// Checkboxes cannot start unset, so a missing boolean default becomes
	// unticked.
	if field.Type == tesseract.TypeBoolean && entry["default"] == nil {
		entry["default"] = false
	}
	return entry, nil
}
