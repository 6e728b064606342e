package streamlit

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle for consumers that want to
// tweak the generated app by shadowing individual templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
