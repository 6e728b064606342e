package tui

import (
	"fmt"
	"strings"
)

// State accumulates collected values keyed by dotted paths and exposes the
// nested payload the Tesseract expects.
type State struct {
	values map[string]any
}

// NewState seeds the state with prefilled flat values, if any.
func NewState(prefill map[string]any) *State {
	values := make(map[string]any, len(prefill))
	for key, value := range prefill {
		values[key] = value
	}
	return &State{values: values}
}

// Get returns the flat value stored for a dotted path.
func (s *State) Get(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.values[path]
	return value, ok
}

// Set stores a flat value under a dotted path.
func (s *State) Set(path string, value any) error {
	if s == nil {
		return fmt.Errorf("tui: state is nil")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("tui: empty path")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[path] = value
	return nil
}

// Payload expands the dotted keys into the nested structure the apply
// endpoint expects. Paths never contain numeric segments; objects all the
// way down.
func (s *State) Payload() map[string]any {
	nested := make(map[string]any)
	if s == nil {
		return nested
	}
	for path, value := range s.values {
		node := nested
		segments := strings.Split(path, ".")
		for _, segment := range segments[:len(segments)-1] {
			child, ok := node[segment].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[segment] = child
			}
			node = child
		}
		node[segments[len(segments)-1]] = value
	}
	return nested
}
