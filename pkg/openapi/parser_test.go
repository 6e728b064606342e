package openapi

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tessgen/pkg/schema"
)

const vectorAddDocument = `{
  "openapi": "3.1.0",
  "info": {"title": "vectoradd", "version": "1.2.0"},
  "paths": {
    "/apply": {
      "post": {
        "description": "Add two vectors scaled by coefficients.",
        "responses": {"200": {"description": "ok"}}
      }
    }
  },
  "components": {
    "schemas": {
      "Inputs": {
        "type": "object",
        "title": "Inputs",
        "properties": {
          "a": {"$ref": "#/components/schemas/Float32"},
          "b": {"$ref": "#/components/schemas/Float32"}
        }
      },
      "Float32": {
        "type": "object",
        "title": "Float32",
        "properties": {
          "dtype": {"const": "float32"},
          "shape": {"type": "array", "minItems": 0, "maxItems": 0},
          "data": {"type": "array"}
        }
      },
      "Apply_InputSchema": {
        "type": "object",
        "properties": {
          "inputs": {"$ref": "#/components/schemas/Inputs"},
          "label": {"type": "string", "title": "Label"}
        }
      }
    }
  }
}`

func vectorAddDoc(t *testing.T) schema.Document {
	t.Helper()
	return schema.MustNewDocument(schema.SourceFromFS("openapi.json"), []byte(vectorAddDocument))
}

func TestParse_VectorAddDocument(t *testing.T) {
	result, err := Parse(context.Background(), vectorAddDoc(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wantMeta := Metadata{
		Title:       "vectoradd",
		Version:     "1.2.0",
		Description: "Add two vectors scaled by coefficients.",
	}
	if diff := cmp.Diff(wantMeta, result.Metadata); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}

	var uids, types []string
	for _, f := range result.Fields {
		uids = append(uids, f.UID)
		types = append(types, f.Type)
	}
	if diff := cmp.Diff([]string{"inputs", "inputs_a", "inputs_b", "label"}, uids); diff != "" {
		t.Fatalf("uid order mismatch (-want +got):\n%s", diff)
	}
	// The Float32 refs are 0-dimensional arrays, so they surface as numbers.
	if diff := cmp.Diff([]string{"composite", "number", "number", "string"}, types); diff != "" {
		t.Fatalf("type mismatch (-want +got):\n%s", diff)
	}

	inputs := result.Fields[0]
	if inputs.ParentContainer != "st" || inputs.Container != "container_inputs" {
		t.Fatalf("container wiring off: %+v", inputs)
	}
	a := result.Fields[1]
	if a.ParentContainer != "container_inputs" || a.Key != "inputs.a" {
		t.Fatalf("nested field wiring off: %+v", a)
	}
}

func TestParse_SchemaNameOverride(t *testing.T) {
	_, err := Parse(context.Background(), vectorAddDoc(t), WithSchemaName("Nope"))
	if err == nil {
		t.Fatal("expected error for missing schema entry")
	}

	result, err := Parse(context.Background(), vectorAddDoc(t), WithSchemaName("Inputs"))
	if err != nil {
		t.Fatalf("parse with override: %v", err)
	}
	if len(result.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(result.Fields))
	}
}

func TestParse_PlainHeadings(t *testing.T) {
	result, err := Parse(context.Background(), vectorAddDoc(t), WithPlainHeadings())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.Fields[0].Title != "inputs" {
		t.Fatalf("title = %q, want raw key", result.Fields[0].Title)
	}
}

func TestExtractMetadata_InfoDescriptionWins(t *testing.T) {
	raw := []byte(`{
  "openapi": "3.1.0",
  "info": {"title": "t", "version": "0.1.0", "description": "From info."},
  "paths": {
    "/apply": {"post": {"description": "From apply.", "responses": {"200": {"description": "ok"}}}}
  }
}`)
	md, err := ExtractMetadata(context.Background(), raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if md.Description != "From info." {
		t.Fatalf("description = %q", md.Description)
	}
}

func TestExtractMetadata_NoDescriptionAnywhere(t *testing.T) {
	raw := []byte(`{
  "openapi": "3.1.0",
  "info": {"title": "t", "version": "0.1.0"},
  "paths": {}
}`)
	if _, err := ExtractMetadata(context.Background(), raw); err == nil {
		t.Fatal("expected error when no description is available")
	}
}
