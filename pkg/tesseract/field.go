package tesseract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Widget type names a FieldDescriptor can carry. "composite" marks container
// rows that render as grouping UI rather than inputs.
const (
	TypeString    = "string"
	TypeNumber    = "number"
	TypeInteger   = "integer"
	TypeBoolean   = "boolean"
	TypeArray     = "array"
	TypeJSON      = "json"
	TypeComposite = "composite"
)

// arrayEncodingKeys is the property set marking pydantic's tensor encoding.
// An object schema whose properties include all of these is an array input,
// not a nested form section.
var arrayEncodingKeys = []string{"dtype", "shape", "data"}

// NumberConstraints carries declared bounds for numeric inputs. Values stay
// json.Number so integer steps render as integer literals.
type NumberConstraints struct {
	MinValue *json.Number `json:"min_value"`
	MaxValue *json.Number `json:"max_value"`
	Step     *json.Number `json:"step"`
}

// FieldDescriptor is one flattened row of the input schema: either an input
// widget or a composite container. Ancestors records the nesting path,
// terminating in the field's own key.
type FieldDescriptor struct {
	Type              string             `json:"type"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Ancestors         []string           `json:"ancestors"`
	Optional          bool               `json:"optional"`
	Default           any                `json:"default"`
	HasDefault        bool               `json:"has_default"`
	NumberConstraints *NumberConstraints `json:"number_constraints,omitempty"`
	CouldBeNumber     bool               `json:"could_be_number"`
}

// formatField shapes one schema node into a FieldDescriptor. The node must
// already be ref-resolved, except for refs inside anyOf members which signal
// composite unions.
func formatField(key string, node Node, ancestors []string, useTitle bool) (FieldDescriptor, error) {
	optional := false
	couldBeNumber := false
	var typ string

	if isUnion(node) {
		res, err := resolveUnion(node)
		if err != nil {
			var ue *UnionError
			if errors.As(err, &ue) {
				ue.Field = key
			}
			return FieldDescriptor{}, err
		}
		typ, optional, couldBeNumber = res.Type, res.Optional, res.CouldBeNumber
	} else if t, ok := node.Get("type"); ok && t.Kind() == KindString {
		typ = t.StringValue()
	} else if !node.Has("properties") {
		// Nodes carrying properties are containers even without an explicit
		// type declaration.
		return FieldDescriptor{}, fmt.Errorf("tesseract: field %q declares no type", key)
	}

	fd := FieldDescriptor{
		Type:      typ,
		Title:     key,
		Ancestors: appendPath(ancestors, key),
		Optional:  optional,
	}
	if useTitle {
		if title, ok := node.Get("title"); ok && title.Kind() == KindString {
			fd.Title = title.StringValue()
		}
	}
	if descr, ok := node.Get("description"); ok && descr.Kind() == KindString {
		fd.Description = descr.StringValue()
	}
	if typ == TypeString {
		fd.CouldBeNumber = couldBeNumber
	}

	props, hasProps := node.Get("properties")
	if !hasProps {
		// Primitive input. Objects without properties render nothing extra.
		if typ != "object" {
			fd.HasDefault = true
			if def, ok := node.Get("default"); ok {
				fd.Default = def.Value()
			}
			// A required plain string with no declared default starts as the
			// empty string so the text widget has a value to show.
			if typ == TypeString && fd.Default == nil && !couldBeNumber && !optional {
				fd.Default = ""
			}
			if typ == TypeNumber || typ == TypeInteger {
				fd.NumberConstraints = constraintsFrom(node)
			}
		}
		return fd, nil
	}

	// Containers ignore the OAS title, which pydantic sets to the model class
	// name rather than the field name.
	if useTitle {
		fd.Title = keyToTitle(key)
	} else {
		fd.Title = key
	}

	if hasArrayEncoding(props) {
		fd.Type = TypeArray
		if shape, ok := props.Get("shape"); ok && isScalarShape(shape) {
			// A bare dtype like Float32 is marked up as a 0-dimensional
			// array but the Tesseract expects a scalar.
			fd.Type = TypeNumber
			fd.HasDefault = true
			if def, ok := node.Get("default"); ok {
				fd.Default = def.Value()
			}
			fd.NumberConstraints = constraintsFrom(node)
		}
		return fd, nil
	}

	fd.Type = TypeComposite
	return fd, nil
}

// hasArrayEncoding reports whether the properties object carries the tensor
// encoding keys.
func hasArrayEncoding(props Node) bool {
	for _, key := range arrayEncodingKeys {
		if !props.Has(key) {
			return false
		}
	}
	return true
}

// isScalarShape reports whether the shape subschema pins the array to zero
// dimensions.
func isScalarShape(shape Node) bool {
	min, okMin := shape.Get("minItems")
	max, okMax := shape.Get("maxItems")
	if !okMin || !okMax {
		return false
	}
	return isZero(min) && isZero(max)
}

func isZero(n Node) bool {
	if n.Kind() != KindNumber {
		return false
	}
	f, err := n.NumberValue().Float64()
	return err == nil && f == 0
}

// constraintsFrom collects declared numeric bounds. Returns nil when the node
// declares none, so absent constraints stay absent downstream.
func constraintsFrom(node Node) *NumberConstraints {
	pick := func(key string) *json.Number {
		v, ok := node.Get(key)
		if !ok || v.Kind() != KindNumber {
			return nil
		}
		num := v.NumberValue()
		return &num
	}
	nc := NumberConstraints{
		MinValue: pick("minimum"),
		MaxValue: pick("maximum"),
		Step:     pick("multipleOf"),
	}
	if nc.MinValue == nil && nc.MaxValue == nil && nc.Step == nil {
		return nil
	}
	return &nc
}

// keyToTitle formats a snake_case schema key as a heading.
func keyToTitle(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		words[i] = titleCase(word)
	}
	return strings.Join(words, " ")
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func appendPath(ancestors []string, key string) []string {
	out := make([]string, 0, len(ancestors)+1)
	out = append(out, ancestors...)
	return append(out, key)
}
