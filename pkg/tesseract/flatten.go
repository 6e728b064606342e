package tesseract

import "fmt"

// Flatten walks a ref-resolved properties object depth-first and returns the
// input fields as a flat, ordered list. Composite containers appear
// immediately before the fields nested under them, so a renderer can lay out
// the form in a single pass.
//
// useTitle selects pretty headings (the OAS title, or the key title-cased for
// containers) over raw parameter names.
func Flatten(properties Node, useTitle bool) ([]FieldDescriptor, error) {
	if properties.Kind() != KindObject {
		return nil, fmt.Errorf("tesseract: flatten: properties is %s, want object", properties.Kind())
	}
	return flattenInto(nil, properties, nil, useTitle)
}

func flattenInto(accum []FieldDescriptor, node Node, ancestors []string, useTitle bool) ([]FieldDescriptor, error) {
	for _, key := range node.Keys() {
		child, _ := node.Get(key)
		fd, err := formatField(key, child, ancestors, useTitle)
		if err != nil {
			return nil, err
		}
		accum = append(accum, fd)
		if fd.Type != TypeComposite {
			continue
		}
		props, ok := child.Get("properties")
		if !ok {
			return nil, fmt.Errorf("tesseract: flatten: composite field %q has no properties", key)
		}
		accum, err = flattenInto(accum, props, fd.Ancestors, useTitle)
		if err != nil {
			return nil, err
		}
	}
	return accum, nil
}
