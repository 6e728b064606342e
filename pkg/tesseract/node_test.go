package tesseract

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeNode_PreservesKeyOrder(t *testing.T) {
	raw := `{"zulu":1,"alpha":{"mike":true,"bravo":null},"echo":[1,"two"]}`

	node, err := DecodeNode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"zulu", "alpha", "echo"}, node.Keys()); diff != "" {
		t.Fatalf("top-level key order mismatch (-want +got):\n%s", diff)
	}
	alpha, _ := node.Get("alpha")
	if diff := cmp.Diff([]string{"mike", "bravo"}, alpha.Keys()); diff != "" {
		t.Fatalf("nested key order mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeNode_NumbersStayLiteral(t *testing.T) {
	node, err := DecodeNode([]byte(`{"int":3,"float":3.0,"exp":1e3}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for key, want := range map[string]json.Number{"int": "3", "float": "3.0", "exp": "1e3"} {
		v, ok := node.Get(key)
		if !ok {
			t.Fatalf("missing key %q", key)
		}
		if v.NumberValue() != want {
			t.Errorf("%s: got %q, want %q", key, v.NumberValue(), want)
		}
	}
}

func TestDecodeNode_RejectsTrailingData(t *testing.T) {
	if _, err := DecodeNode([]byte(`{"a":1} {"b":2}`)); err == nil {
		t.Fatal("expected error for trailing data")
	}
}

func TestNode_SetKeepsPositionOnOverwrite(t *testing.T) {
	obj := Object()
	obj.Set("first", NumberFromInt(1))
	obj.Set("second", NumberFromInt(2))
	obj.Set("first", NumberFromInt(10))
	obj.Set("third", NumberFromInt(3))

	if diff := cmp.Diff([]string{"first", "second", "third"}, obj.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	v, _ := obj.Get("first")
	if v.NumberValue() != "10" {
		t.Fatalf("overwrite lost: got %q", v.NumberValue())
	}
}

func TestNode_DeletePreservesRemainingOrder(t *testing.T) {
	obj := Object()
	for _, k := range []string{"a", "b", "c"} {
		obj.Set(k, String(k))
	}
	obj.Delete("b")
	if diff := cmp.Diff([]string{"a", "c"}, obj.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_CloneIsDeep(t *testing.T) {
	original, err := DecodeNode([]byte(`{"outer":{"inner":"before"},"list":[{"k":"v"}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	clone := original.Clone()

	outer, _ := clone.Get("outer")
	outer.Set("inner", String("after"))
	clone.Set("outer", outer)

	got, _ := original.Get("outer")
	inner, _ := got.Get("inner")
	if inner.StringValue() != "before" {
		t.Fatalf("clone aliased the original: inner = %q", inner.StringValue())
	}
}

func TestNode_ValuePlainView(t *testing.T) {
	node, err := DecodeNode([]byte(`{"b":true,"n":null,"s":"x","a":[1]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"b": true,
		"n": nil,
		"s": "x",
		"a": []any{json.Number("1")},
	}
	if diff := cmp.Diff(want, node.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}
