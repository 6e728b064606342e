package streamlit

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-tessgen/pkg/openapi"
	"github.com/goliatone/go-tessgen/pkg/render"
	"github.com/goliatone/go-tessgen/pkg/tesseract"
	"github.com/goliatone/go-tessgen/pkg/udf"
)

func num(v string) *json.Number {
	n := json.Number(v)
	return &n
}

func sampleData() render.TemplateData {
	return render.TemplateData{
		Metadata: openapi.Metadata{
			Title:       "vectoradd",
			Description: "Adds two vectors.",
			Version:     "1.0.0",
		},
		URL: "http://localhost:8000",
		Fields: []tesseract.UIField{
			{
				ParentContainer: tesseract.RootContainer,
				Container:       "container_inputs",
				UID:             "inputs",
				Stem:            "inputs",
				Key:             "inputs",
				Type:            tesseract.TypeComposite,
				Title:           "Inputs",
			},
			{
				ParentContainer: "container_inputs",
				Container:       "container_inputs_a",
				UID:             "inputs_a",
				Stem:            "a",
				Key:             "inputs.a",
				Type:            tesseract.TypeNumber,
				Title:           "A",
				Default:         json.Number("1.5"),
				HasDefault:      true,
				NumberConstraints: &tesseract.NumberConstraints{
					MinValue: num("0"),
					Step:     num("0.5"),
				},
			},
			{
				ParentContainer: "container_inputs",
				Container:       "container_inputs_label",
				UID:             "inputs_label",
				Stem:            "label",
				Key:             "inputs.label",
				Type:            tesseract.TypeString,
				Title:           "Label",
				Optional:        true,
				Default:         nil,
				HasDefault:      true,
			},
			{
				ParentContainer: tesseract.RootContainer,
				Container:       "container_verbose",
				UID:             "verbose",
				Stem:            "verbose",
				Key:             "verbose",
				Type:            tesseract.TypeBoolean,
				Title:           "Verbose",
			},
		},
	}
}

func TestRendererRender(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if renderer.Name() != "streamlit" {
		t.Errorf("Name() = %q, want %q", renderer.Name(), "streamlit")
	}

	out, err := renderer.Render(context.Background(), sampleData(), render.NewOptions())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	script := string(out)

	for _, want := range []string{
		"TESSERACT_URL = 'http://localhost:8000'",
		"TESTING = False",
		"st.title('vectoradd')",
		"container_inputs = st.container(border=True)",
		"container_inputs.subheader('Inputs')",
		"_values['inputs.a'] = container_inputs.number_input(",
		"min_value=0,",
		"step=0.5,",
		"key='inputs_a',",
		"_values['inputs.label'] = container_inputs.text_input(",
		") or None",
		"_values['verbose'] = st.checkbox(",
		"value=False,",
		`_run = st.button("Apply")`,
		"payload = nest_payload(_values)",
		"outputs = run_tesseract(payload)",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}

	if strings.Contains(script, "stpyvista") {
		t.Error("script should not import stpyvista without pyvista functions")
	}
}

func TestRendererOptions(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	options := render.NewOptions(
		render.WithoutSubmitButton(),
		render.WithExponentialFloats(),
		render.WithTesting(),
		render.WithValues(map[string]any{"inputs.a": json.Number("9")}),
		render.WithTheme(&theme.RendererConfig{
			Theme:   "dark",
			CSSVars: map[string]string{"accent": "#ff0000"},
		}),
	)

	out, err := renderer.Render(context.Background(), sampleData(), options)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	script := string(out)

	for _, want := range []string{
		"_run = True",
		"TESTING = True",
		`format="%e",`,
		"value=9,",
		"--accent: #ff0000;",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
	if strings.Contains(script, `st.button("Apply")`) {
		t.Error("submit button should be omitted")
	}
}

func TestRendererUDFs(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	data := sampleData()
	data.UDFSource = "def plot_inputs(inputs):\n    return inputs\n"
	data.UDFs = &udf.Register{
		Inputs: []udf.FuncDescription{
			{Name: "plot_inputs", Title: "Plot Inputs", Backend: udf.BackendBuiltin},
		},
		Both: []udf.FuncDescription{
			{Name: "surface_mesh", Title: "Surface Mesh", Backend: udf.BackendPyVista},
		},
	}

	out, err := renderer.Render(context.Background(), data, render.NewOptions())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	script := string(out)

	for _, want := range []string{
		"from stpyvista.vtkjs_backend import export_vtksz, stpyvista",
		"def plot_inputs(inputs):",
		"st.write(plot_inputs(inputs=payload))",
		"st.subheader('Surface Mesh')",
		"stpyvista(asyncio.run(export_vtksz(surface_mesh(inputs=payload, outputs=outputs))), key='surface_mesh')",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestRendererRequiresURL(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	data := sampleData()
	data.URL = ""
	if _, err := renderer.Render(context.Background(), data, render.NewOptions()); err == nil {
		t.Fatal("expected error for missing URL")
	}
}
