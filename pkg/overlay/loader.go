package overlay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is
// empty. A widget uid defined in more than one file is an error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{fields: make(map[string]FieldOverride)}
	if fsys == nil {
		return store, nil
	}

	sanitizer := bluemonday.UGCPolicy()

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("overlay: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for uid, raw := range doc.Fields {
			uid = strings.TrimSpace(uid)
			if uid == "" {
				return fmt.Errorf("overlay: file %s defines an empty field uid", path)
			}
			if existing, exists := store.fields[uid]; exists {
				return fmt.Errorf("overlay: duplicate field %q (files %s and %s)", uid, existing.source, path)
			}

			override, err := normalizeOverride(raw, uid, path, sanitizer)
			if err != nil {
				return err
			}
			store.fields[uid] = override
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

type documentFile struct {
	Fields map[string]map[string]any `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return documentFile{}, fmt.Errorf("overlay: file %s is empty", source)
	}

	var doc documentFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("overlay: parse %s: invalid JSON or YAML", source)
}

// normalizeOverride builds a FieldOverride from the raw mapping. Presence of
// the default key is significant, so the mapping is inspected directly
// instead of unmarshaled into the struct.
func normalizeOverride(raw map[string]any, uid, source string, sanitizer *bluemonday.Policy) (FieldOverride, error) {
	override := FieldOverride{source: source}
	for key, value := range raw {
		switch key {
		case "title":
			s, ok := value.(string)
			if !ok {
				return FieldOverride{}, fmt.Errorf("overlay: field %q (file %s): title must be a string", uid, source)
			}
			override.Title = sanitizer.Sanitize(s)
		case "help":
			s, ok := value.(string)
			if !ok {
				return FieldOverride{}, fmt.Errorf("overlay: field %q (file %s): help must be a string", uid, source)
			}
			override.Help = sanitizer.Sanitize(s)
		case "hidden":
			b, ok := value.(bool)
			if !ok {
				return FieldOverride{}, fmt.Errorf("overlay: field %q (file %s): hidden must be a boolean", uid, source)
			}
			override.Hidden = b
		case "default":
			override.Default = value
			override.hasDefault = true
		default:
			return FieldOverride{}, fmt.Errorf("overlay: field %q (file %s): unknown key %q", uid, source, key)
		}
	}
	return override, nil
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
