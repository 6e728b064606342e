// Package openapi reads Tesseract OpenAPI documents: metadata for the app
// header via kin-openapi, and the apply input schema located in the raw node
// tree so property order survives into the flattened field list.
package openapi
