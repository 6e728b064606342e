// Package orchestrator coordinates the full pipeline from Tesseract OpenAPI
// document to rendered output: load, parse and flatten the schema, fold in
// overlay tweaks, scan user plotting code, and hand the assembled template
// data to the selected renderer.
package orchestrator
