package overlay_test

import (
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tessgen/pkg/overlay"
	"github.com/goliatone/go-tessgen/pkg/tesseract"
)

func sampleFields() []tesseract.UIField {
	return []tesseract.UIField{
		{
			ParentContainer: tesseract.RootContainer,
			Container:       "container_inputs",
			UID:             "inputs",
			Key:             "inputs",
			Type:            tesseract.TypeComposite,
			Title:           "Inputs",
		},
		{
			ParentContainer: "container_inputs",
			UID:             "inputs_a",
			Key:             "inputs.a",
			Type:            tesseract.TypeNumber,
			Title:           "A",
		},
		{
			ParentContainer: "container_inputs",
			UID:             "inputs_debug",
			Key:             "inputs.debug",
			Type:            tesseract.TypeBoolean,
			Title:           "Debug",
		},
		{
			ParentContainer: tesseract.RootContainer,
			UID:             "label",
			Key:             "label",
			Type:            tesseract.TypeString,
			Title:           "Label",
		},
	}
}

func TestLoadFSAndApply(t *testing.T) {
	fsys := fstest.MapFS{
		"tweaks.yaml": &fstest.MapFile{Data: []byte(`
fields:
  inputs_a:
    title: Mass
    help: Mass in kilograms
    default: 1.5
  inputs_debug:
    hidden: true
`)},
	}

	store, err := overlay.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}
	if store.Empty() {
		t.Fatal("store should not be empty")
	}

	got := store.Apply(sampleFields())

	var uids []string
	for _, field := range got {
		uids = append(uids, field.UID)
	}
	if diff := cmp.Diff([]string{"inputs", "inputs_a", "label"}, uids); diff != "" {
		t.Errorf("uid mismatch (-want +got):\n%s", diff)
	}

	mass := got[1]
	if mass.Title != "Mass" {
		t.Errorf("Title = %q, want Mass", mass.Title)
	}
	if mass.Description != "Mass in kilograms" {
		t.Errorf("Description = %q", mass.Description)
	}
	if !mass.HasDefault || mass.Default != 1.5 {
		t.Errorf("Default = %v (has=%v), want 1.5", mass.Default, mass.HasDefault)
	}
}

func TestLoadFSJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"tweaks.json": &fstest.MapFile{Data: []byte(`{
  "fields": {
    "label": {"default": "calibration"}
  }
}`)},
	}

	store, err := overlay.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}

	override, ok := store.Override("label")
	if !ok {
		t.Fatal("label override missing")
	}
	if override.Default != "calibration" {
		t.Errorf("Default = %v", override.Default)
	}

	got := store.Apply(sampleFields())
	last := got[len(got)-1]
	if !last.HasDefault || last.Default != "calibration" {
		t.Errorf("applied default = %v (has=%v)", last.Default, last.HasDefault)
	}
}

func TestHiddenCompositeHidesSubtree(t *testing.T) {
	fsys := fstest.MapFS{
		"hide.yml": &fstest.MapFile{Data: []byte("fields:\n  inputs:\n    hidden: true\n")},
	}

	store, err := overlay.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}

	got := store.Apply(sampleFields())
	if len(got) != 1 || got[0].UID != "label" {
		t.Errorf("expected only label to survive, got %v", got)
	}
}

func TestLoadFSDuplicateUID(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte("fields:\n  inputs_a:\n    title: One\n")},
		"b.yaml": &fstest.MapFile{Data: []byte("fields:\n  inputs_a:\n    title: Two\n")},
	}

	if _, err := overlay.LoadFS(fsys); err == nil {
		t.Fatal("expected duplicate uid error")
	} else if !strings.Contains(err.Error(), "duplicate field") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFSRejectsUnknownKey(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": &fstest.MapFile{Data: []byte("fields:\n  inputs_a:\n    widget: slider\n")},
	}

	if _, err := overlay.LoadFS(fsys); err == nil {
		t.Fatal("expected unknown key error")
	}
}

func TestSanitizeStripsMarkup(t *testing.T) {
	fsys := fstest.MapFS{
		"tweaks.yaml": &fstest.MapFile{Data: []byte(
			"fields:\n  label:\n    help: \"<script>alert(1)</script>plain\"\n")},
	}

	store, err := overlay.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}
	override, _ := store.Override("label")
	if strings.Contains(override.Help, "<script>") {
		t.Errorf("script tag survived sanitization: %q", override.Help)
	}
	if !strings.Contains(override.Help, "plain") {
		t.Errorf("plain text lost: %q", override.Help)
	}
}

func TestLoadFSNumbersStayNumbers(t *testing.T) {
	fsys := fstest.MapFS{
		"tweaks.json": &fstest.MapFile{Data: []byte(`{"fields":{"inputs_a":{"default":30}}}`)},
	}

	store, err := overlay.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}
	override, _ := store.Override("inputs_a")
	if override.Default != json.Number("30") {
		t.Errorf("Default = %#v, want json.Number(30)", override.Default)
	}
}
