package tesseract

import "strings"

// RootContainer is the parent container marker for top-level fields. The
// generated Streamlit app addresses the streamlit module itself as the root.
const RootContainer = "st"

// UIField is a FieldDescriptor with the ancestors list expanded into the
// identifiers templates need: a flat uid, the dotted payload key, the field's
// own stem, and the container variables for nesting.
type UIField struct {
	ParentContainer   string             `json:"parent_container"`
	Container         string             `json:"container"`
	UID               string             `json:"uid"`
	Stem              string             `json:"stem"`
	Key               string             `json:"key"`
	Type              string             `json:"type"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Optional          bool               `json:"optional"`
	Default           any                `json:"default"`
	HasDefault        bool               `json:"has_default"`
	NumberConstraints *NumberConstraints `json:"number_constraints,omitempty"`
	CouldBeNumber     bool               `json:"could_be_number"`
}

// AdaptPath derives the template identifiers from a field's ancestors.
//
// Invariant: a nested field's ParentContainer equals the Container of the
// composite row emitted before it, so containers resolve in declaration
// order.
func AdaptPath(fd FieldDescriptor) UIField {
	uid := strings.Join(fd.Ancestors, "_")
	parent := RootContainer
	if len(fd.Ancestors) > 1 {
		parent = "container_" + strings.Join(fd.Ancestors[:len(fd.Ancestors)-1], "_")
	}
	return UIField{
		ParentContainer:   parent,
		Container:         "container_" + uid,
		UID:               uid,
		Stem:              fd.Ancestors[len(fd.Ancestors)-1],
		Key:               strings.Join(fd.Ancestors, "."),
		Type:              fd.Type,
		Title:             fd.Title,
		Description:       fd.Description,
		Optional:          fd.Optional,
		Default:           fd.Default,
		HasDefault:        fd.HasDefault,
		NumberConstraints: fd.NumberConstraints,
		CouldBeNumber:     fd.CouldBeNumber,
	}
}

// AdaptPaths maps AdaptPath over a flattened field list.
func AdaptPaths(fields []FieldDescriptor) []UIField {
	out := make([]UIField, len(fields))
	for i, fd := range fields {
		out[i] = AdaptPath(fd)
	}
	return out
}
