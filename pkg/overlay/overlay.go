package overlay

import (
	"strings"

	"github.com/goliatone/go-tessgen/pkg/tesseract"
)

// FieldOverride describes the presentation adjustments for a single field,
// addressed by its widget uid.
type FieldOverride struct {
	Title   string `json:"title" yaml:"title"`
	Help    string `json:"help" yaml:"help"`
	Hidden  bool   `json:"hidden" yaml:"hidden"`
	Default any    `json:"default" yaml:"default"`

	source     string
	hasDefault bool
}

// Source reports the file the override was loaded from.
func (f FieldOverride) Source() string { return f.source }

// Store holds the overrides collected from an overlay directory.
type Store struct {
	fields map[string]FieldOverride
}

// Empty reports whether the store holds any overrides.
func (s *Store) Empty() bool {
	return s == nil || len(s.fields) == 0
}

// Override returns the override registered for a widget uid.
func (s *Store) Override(uid string) (FieldOverride, bool) {
	if s == nil {
		return FieldOverride{}, false
	}
	override, ok := s.fields[uid]
	return override, ok
}

// Apply returns a new field slice with the overrides folded in. Hiding a
// composite field hides its whole subtree. Declaration order is preserved.
func (s *Store) Apply(fields []tesseract.UIField) []tesseract.UIField {
	if s.Empty() {
		return fields
	}

	out := make([]tesseract.UIField, 0, len(fields))
	var hiddenPrefix string
	for _, field := range fields {
		if hiddenPrefix != "" && strings.HasPrefix(field.UID, hiddenPrefix) {
			continue
		}
		hiddenPrefix = ""

		override, ok := s.fields[field.UID]
		if !ok {
			out = append(out, field)
			continue
		}
		if override.Hidden {
			if field.Type == tesseract.TypeComposite {
				hiddenPrefix = field.UID + "_"
			}
			continue
		}

		if override.Title != "" {
			field.Title = override.Title
		}
		if override.Help != "" {
			field.Description = override.Help
		}
		if override.hasDefault {
			field.Default = override.Default
			field.HasDefault = true
		}
		out = append(out, field)
	}
	return out
}
