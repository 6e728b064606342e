package tesseract

import "fmt"

// ResolutionError reports a "$ref" pointer that cannot be followed through
// the document.
type ResolutionError struct {
	Pointer string
	Segment string
}

func (e *ResolutionError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("tesseract: cannot resolve %q: no value under segment %q", e.Pointer, e.Segment)
	}
	return fmt.Sprintf("tesseract: cannot resolve %q", e.Pointer)
}

// UnionError reports an anyOf union that collapses to nothing renderable,
// which happens when every member declares type "null".
type UnionError struct {
	Field string
}

func (e *UnionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("tesseract: union for field %q contains only null members", e.Field)
	}
	return "tesseract: union contains only null members"
}
