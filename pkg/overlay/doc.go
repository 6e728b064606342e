// Package overlay layers user-authored presentation tweaks over the field
// descriptors produced from a Tesseract schema. Overlays are JSON or YAML
// files keyed by widget uid and can retitle, annotate, hide, or prefill
// fields without touching the schema itself.
package overlay
