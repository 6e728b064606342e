package tesseract

// isUnion reports whether the field node declares an anyOf union without an
// explicit type of its own.
func isUnion(node Node) bool {
	return node.Has("anyOf") && !node.Has("type")
}

// unionResolution is the collapsed view of an anyOf union.
type unionResolution struct {
	Type          string
	Optional      bool
	CouldBeNumber bool
}

// resolveUnion collapses an anyOf union into a single widget type. The rules
// apply in order:
//
//  1. any member still carrying "$ref" makes the union composite: "json"
//  2. a union whose members are all "null" is a UnionError
//  3. a single non-null type survives verbatim, with optional set when a
//     null member was removed
//  4. integer/number mixtures collapse to "number"
//  5. "array" plus only integer/number collapses to "array"
//  6. a numeric member among other types collapses to "string" with
//     CouldBeNumber set, so the UI can round-trip numeric text
//  7. everything else collapses to "string"
func resolveUnion(node Node) (unionResolution, error) {
	anyOf, _ := node.Get("anyOf")

	var types []string
	hasComposite := false
	hasNumber := false
	for i := 0; i < anyOf.Len(); i++ {
		member := anyOf.Index(i)
		if typ, ok := member.Get("type"); ok && typ.Kind() == KindString {
			name := typ.StringValue()
			types = append(types, name)
			if name == "integer" || name == "number" {
				hasNumber = true
			}
			continue
		}
		if member.Has("$ref") {
			hasComposite = true
		}
	}

	optional := false
	nonNull := types[:0]
	for _, t := range types {
		if t == "null" {
			optional = true
			continue
		}
		nonNull = append(nonNull, t)
	}

	if hasComposite {
		return unionResolution{Type: "json", Optional: optional}, nil
	}
	if len(nonNull) == 0 {
		return unionResolution{}, &UnionError{}
	}
	if len(nonNull) == 1 {
		return unionResolution{Type: nonNull[0], Optional: optional}, nil
	}
	if allNumeric(nonNull) {
		return unionResolution{Type: "number", Optional: optional}, nil
	}
	if hasType(nonNull, "array") {
		rest := withoutType(nonNull, "array")
		if allNumeric(rest) {
			return unionResolution{Type: "array", Optional: optional}, nil
		}
	}
	if hasNumber {
		return unionResolution{Type: "string", Optional: optional, CouldBeNumber: true}, nil
	}
	return unionResolution{Type: "string", Optional: optional}, nil
}

func allNumeric(types []string) bool {
	for _, t := range types {
		if t != "integer" && t != "number" {
			return false
		}
	}
	return true
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func withoutType(types []string, drop string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if t != drop {
			out = append(out, t)
		}
	}
	return out
}
