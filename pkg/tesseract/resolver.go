package tesseract

import "strings"

// ResolveRefs expands every "$ref" in node against the full document,
// returning a new tree. The input is never mutated.
//
// A node carrying "$ref" has the pointer target resolved (chains of refs
// allowed) and the target's fields merged over the node's remaining siblings,
// so referent values win on key collisions. Non-object nodes are returned
// unchanged; in particular refs inside anyOf member lists stay as written,
// which the union resolver relies on to detect composite members.
//
// There is no cycle detection. A schema whose refs form a cycle recurses
// until the stack is exhausted; Tesseract input schemas are generated from
// finite pydantic models and cannot form one.
func ResolveRefs(node, root Node) (Node, error) {
	if node.Kind() != KindObject {
		return node, nil
	}

	if ref, ok := node.Get("$ref"); ok && ref.Kind() == KindString {
		target, err := lookupPointer(root, ref.StringValue())
		if err != nil {
			return Node{}, err
		}
		resolved, err := ResolveRefs(target, root)
		if err != nil {
			return Node{}, err
		}

		out := Object()
		for _, key := range node.Keys() {
			if key == "$ref" {
				continue
			}
			v, _ := node.Get(key)
			out.Set(key, v.Clone())
		}
		if resolved.Kind() == KindObject {
			for _, key := range resolved.Keys() {
				v, _ := resolved.Get(key)
				out.Set(key, v.Clone())
			}
			return out, nil
		}
		// Pointer targets that are not objects replace the node outright.
		return resolved.Clone(), nil
	}

	out := Object()
	for _, key := range node.Keys() {
		v, _ := node.Get(key)
		resolved, err := ResolveRefs(v, root)
		if err != nil {
			return Node{}, err
		}
		out.Set(key, resolved.Clone())
	}
	return out, nil
}

// lookupPointer walks a "#/components/schemas/X" style pointer by repeated
// object-key lookup from the document root. Anything that is not an object
// along the way, or a missing key, is a ResolutionError.
func lookupPointer(root Node, pointer string) (Node, error) {
	path := strings.TrimLeft(pointer, "#/")
	current := root
	for _, segment := range strings.Split(path, "/") {
		next, ok := current.Get(segment)
		if !ok {
			return Node{}, &ResolutionError{Pointer: pointer, Segment: segment}
		}
		current = next
	}
	return current, nil
}
