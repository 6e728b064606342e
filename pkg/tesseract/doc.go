// Package tesseract turns the recursively structured input schema of a
// Tesseract OpenAPI document into a flat, ordered list of UI field
// descriptors.
//
// The pipeline is pure and synchronous: decode the document into an
// order-preserving Node tree, inline $ref pointers, collapse anyOf unions to
// a single widget type, classify pydantic's array encoding (including
// 0-dimensional arrays that are really scalars), then flatten depth-first so
// composite containers precede the fields nested under them. AdaptPath
// expands each field's ancestry into the uid/key/container identifiers the
// renderers address widgets by.
package tesseract
