package udf

import (
	"fmt"
	"os"
	"strings"
)

// Plotting backends the generated app knows how to drive. Builtin means the
// return value goes straight to Streamlit's native chart elements.
const (
	BackendBuiltin = "builtin"
	BackendPyVista = "pyvista"
)

// FuncDescription is a brief summary of one plotting function: its name, the
// first docstring line as a title, and the remaining docstring as docs.
type FuncDescription struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Docs    string `json:"docs"`
	Backend string `json:"backend"`
}

// Register sorts plotting functions by the parameters they accept, so the
// generated app can call each with the right payloads: Tesseract inputs,
// outputs, or both.
type Register struct {
	Inputs  []FuncDescription `json:"inputs"`
	Outputs []FuncDescription `json:"outputs"`
	Both    []FuncDescription `json:"both"`
}

// Empty reports whether no functions were registered.
func (r Register) Empty() bool {
	return len(r.Inputs) == 0 && len(r.Outputs) == 0 && len(r.Both) == 0
}

// NeedsPyVista reports whether any registered function plots through pyvista,
// which the generated app must then initialise support for.
func (r Register) NeedsPyVista() bool {
	for _, group := range [][]FuncDescription{r.Inputs, r.Outputs, r.Both} {
		for _, fn := range group {
			if fn.Backend == BackendPyVista {
				return true
			}
		}
	}
	return false
}

// FunctionError reports a plotting function whose signature the generated app
// cannot call.
type FunctionError struct {
	Name   string
	Params []string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf(
		"udf: function signature must take parameters of 'inputs' and / or 'outputs'; %s has parameters [%s]",
		e.Name, strings.Join(e.Params, ", "),
	)
}

// Warning flags a function that registers fine but renders with degraded
// annotations.
type Warning struct {
	Name    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("udf: function %q: %s", w.Name, w.Message)
}

// Parse scans a Python module's source and registers its public top-level
// functions. Functions whose names start with an underscore are skipped. A
// function without a docstring registers with empty title and docs plus a
// Warning; a function with unexpected parameters is a FunctionError.
func Parse(src []byte) (Register, []Warning, error) {
	funcs, err := scanFunctions(src)
	if err != nil {
		return Register{}, nil, err
	}

	register := Register{}
	var warnings []Warning
	for _, fn := range funcs {
		if strings.HasPrefix(fn.name, "_") {
			continue
		}

		group, err := classifyParams(fn)
		if err != nil {
			return Register{}, nil, err
		}

		descr := describe(fn)
		if fn.docstring == "" {
			warnings = append(warnings, Warning{
				Name:    fn.name,
				Message: "no docstring; plot title and description will be empty",
			})
		}

		switch group {
		case "inputs":
			register.Inputs = append(register.Inputs, descr)
		case "outputs":
			register.Outputs = append(register.Outputs, descr)
		case "both":
			register.Both = append(register.Both, descr)
		}
	}
	return register, warnings, nil
}

// Load reads and parses the plotting module at path.
func Load(path string) (Register, []Warning, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Register{}, nil, fmt.Errorf("udf: read module: %w", err)
	}
	return Parse(src)
}

func classifyParams(fn pyFunc) (string, error) {
	params := fn.params
	switch {
	case len(params) == 1 && params[0] == "inputs":
		return "inputs", nil
	case len(params) == 1 && params[0] == "outputs":
		return "outputs", nil
	case len(params) == 2 && hasParam(params, "inputs") && hasParam(params, "outputs"):
		return "both", nil
	}
	return "", &FunctionError{Name: fn.name, Params: params}
}

func hasParam(params []string, want string) bool {
	for _, p := range params {
		if p == want {
			return true
		}
	}
	return false
}

func describe(fn pyFunc) FuncDescription {
	backend := BackendBuiltin
	if returnsPlotter(fn.returns) {
		backend = BackendPyVista
	}
	title, docs := splitDocstring(fn.docstring)
	return FuncDescription{
		Name:    fn.name,
		Title:   title,
		Docs:    docs,
		Backend: backend,
	}
}

// returnsPlotter matches annotations like "pv.Plotter", "pyvista.Plotter", or
// a bare "Plotter".
func returnsPlotter(annotation string) bool {
	annotation = strings.TrimSpace(annotation)
	if annotation == "" {
		return false
	}
	if idx := strings.LastIndex(annotation, "."); idx >= 0 {
		annotation = annotation[idx+1:]
	}
	return annotation == "Plotter"
}

func splitDocstring(doc string) (title, docs string) {
	if doc == "" {
		return "", ""
	}
	title, docs, _ = strings.Cut(doc, "\n")
	return strings.TrimSpace(title), strings.TrimSpace(docs)
}
