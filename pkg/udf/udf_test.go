package udf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const plottingModule = `from typing import Any

import matplotlib.pyplot as plt
import numpy as np
import pyvista as pv
from matplotlib.figure import Figure


def _poly_eval(
    coeffs: list[float], x: np.ndarray
) -> np.ndarray:
    poly = np.polynomial.Polynomial(coeffs)
    return poly(x)


def polynomial_power(inputs: dict[str, Any]) -> Figure:
    """Displays the polynomial defined by coeffs provided in the inputs.

    The polynomial displayed here is a power series. It's nice. Thank
    you, numpy.
    """
    x = np.linspace(0.0, 10.0, 100)
    fig, ax = plt.subplots()
    ax.plot(x, _poly_eval(inputs["coeffs"], x))
    return fig


def gaussian(outputs: dict[str, Any]) -> Figure:
    fig, ax = plt.subplots()
    ax.contourf(outputs["x_data"], outputs["y_data"], outputs["grid"])
    return fig


def surface_mesh(
    inputs: dict[str, Any],
    outputs: dict[str, Any],
) -> pv.Plotter:
    """Renders the deformed mesh.

    Colours the surface by displacement magnitude.
    """
    plotter = pv.Plotter()
    return plotter
`

func TestParse_RegistersByParameters(t *testing.T) {
	register, warnings, err := Parse([]byte(plottingModule))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := Register{
		Inputs: []FuncDescription{{
			Name:    "polynomial_power",
			Title:   "Displays the polynomial defined by coeffs provided in the inputs.",
			Docs:    "The polynomial displayed here is a power series. It's nice. Thank\nyou, numpy.",
			Backend: BackendBuiltin,
		}},
		Outputs: []FuncDescription{{
			Name:    "gaussian",
			Backend: BackendBuiltin,
		}},
		Both: []FuncDescription{{
			Name:    "surface_mesh",
			Title:   "Renders the deformed mesh.",
			Docs:    "Colours the surface by displacement magnitude.",
			Backend: BackendPyVista,
		}},
	}
	if diff := cmp.Diff(want, register); diff != "" {
		t.Fatalf("register mismatch (-want +got):\n%s", diff)
	}

	if len(warnings) != 1 || warnings[0].Name != "gaussian" {
		t.Fatalf("warnings = %+v, want one for gaussian", warnings)
	}
}

func TestParse_UnderscoreFunctionsSkipped(t *testing.T) {
	register, _, err := Parse([]byte(plottingModule))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, group := range [][]FuncDescription{register.Inputs, register.Outputs, register.Both} {
		for _, fn := range group {
			if fn.Name == "_poly_eval" {
				t.Fatal("private helper leaked into the register")
			}
		}
	}
}

func TestParse_BadSignatureIsError(t *testing.T) {
	src := []byte(`def broken(data, extra):
    """Doc."""
    return data
`)
	_, _, err := Parse(src)
	var fnErr *FunctionError
	if !errors.As(err, &fnErr) {
		t.Fatalf("err = %v, want FunctionError", err)
	}
	if fnErr.Name != "broken" {
		t.Fatalf("name = %q", fnErr.Name)
	}
	if diff := cmp.Diff([]string{"data", "extra"}, fnErr.Params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_BothParametersAnyOrder(t *testing.T) {
	src := []byte(`def compare(outputs, inputs):
    """Compares."""
    return None
`)
	register, _, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(register.Both) != 1 {
		t.Fatalf("register = %+v, want one entry under both", register)
	}
}

func TestParse_NestedDefsIgnored(t *testing.T) {
	src := []byte(`def show(inputs):
    """Shows."""
    def helper(a, b):
        return a + b
    return helper(1, 2)
`)
	register, _, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(register.Inputs) != 1 || register.Inputs[0].Name != "show" {
		t.Fatalf("register = %+v", register)
	}
}

func TestParse_SingleLineDocstring(t *testing.T) {
	src := []byte(`def show(inputs) -> None:
    """One line only."""
    pass
`)
	register, warnings, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %+v", warnings)
	}
	fn := register.Inputs[0]
	if fn.Title != "One line only." || fn.Docs != "" {
		t.Fatalf("description = %+v", fn)
	}
}

func TestRegister_NeedsPyVista(t *testing.T) {
	plain := Register{Inputs: []FuncDescription{{Name: "a", Backend: BackendBuiltin}}}
	if plain.NeedsPyVista() {
		t.Fatal("builtin-only register should not need pyvista")
	}
	mesh := Register{Outputs: []FuncDescription{{Name: "b", Backend: BackendPyVista}}}
	if !mesh.NeedsPyVista() {
		t.Fatal("pyvista backend should flip the flag")
	}
}
