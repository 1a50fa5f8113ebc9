package jsonshape_test

import (
	"errors"
	"strings"
	"testing"

	jsonshape "github.com/jsonshape/jsonshape"
)

func TestParseBytes_KeyOrderPreserved(t *testing.T) {
	v, err := jsonshape.ParseBytes([]byte(`{"b": 1, "a": 2, "c": 3}`))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	got := strings.Join(v.Keys(), ",")
	if got != "b,a,c" {
		t.Errorf("key order = %q, want b,a,c", got)
	}
}

func TestParseBytes_Links(t *testing.T) {
	root := mustParseRoot(t, `{"items": [true, {"name": "x"}]}`)
	obj := root.Child()

	items, ok := obj.FieldValue("items")
	if !ok {
		t.Fatalf("missing items field")
	}
	if items.Parent() != obj {
		t.Errorf("items parent link broken")
	}
	if key, ok := items.FieldKey(); !ok || key != "items" {
		t.Errorf("items containing field = %q, %v", key, ok)
	}

	elems := items.Elems()
	if len(elems) != 2 {
		t.Fatalf("len(elems) = %d", len(elems))
	}
	if idx, ok := elems[1].Index(); !ok || idx != 1 {
		t.Errorf("element index = %d, %v", idx, ok)
	}
	if _, ok := elems[1].FieldKey(); ok {
		t.Errorf("array element must not carry a containing field")
	}
	if elems[1].Parent() != items {
		t.Errorf("element parent link broken")
	}

	name, _ := elems[1].FieldValue("name")
	if got := name.Pointer(); got != "/items/1/name" {
		t.Errorf("Pointer() = %q", got)
	}
}

func TestParseBytes_Numbers(t *testing.T) {
	v, err := jsonshape.ParseBytes([]byte(`{"i": 42, "d": 2.5, "e": 1e3, "big": 99999999999999999999}`))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	i, _ := v.FieldValue("i")
	if i.Kind() != jsonshape.KindInteger || i.Int64() != 42 {
		t.Errorf("i parsed as %s", i.TypeName())
	}
	if raw, ok := i.Raw().(string); !ok || raw != "42" {
		t.Errorf("i raw = %v", i.Raw())
	}
	d, _ := v.FieldValue("d")
	if d.Kind() != jsonshape.KindDouble || d.Float64() != 2.5 {
		t.Errorf("d parsed as %s", d.TypeName())
	}
	e, _ := v.FieldValue("e")
	if e.Kind() != jsonshape.KindDouble || e.Float64() != 1000 {
		t.Errorf("e parsed as %s %q", e.TypeName(), e.ScalarString())
	}
	big, _ := v.FieldValue("big")
	if big.Kind() != jsonshape.KindDouble {
		t.Errorf("int64 overflow should degrade to double, got %s", big.TypeName())
	}
}

func TestParseBytes_Errors(t *testing.T) {
	if _, err := jsonshape.ParseBytes(nil); !errors.Is(err, jsonshape.ErrEmptyInput) {
		t.Errorf("empty input: got %v", err)
	}
	if _, err := jsonshape.ParseBytes([]byte(`{"a":`)); err == nil {
		t.Errorf("truncated input: expected error")
	}
}

func TestValue_AsAny(t *testing.T) {
	root := mustParseRoot(t, `{"a": [1, "x", null]}`)
	m, ok := root.AsAny().(map[string]any)
	if !ok {
		t.Fatalf("AsAny() = %T", root.AsAny())
	}
	arr, ok := m["a"].([]any)
	if !ok || len(arr) != 3 {
		t.Fatalf("a = %v", m["a"])
	}
	if arr[2] != nil {
		t.Errorf("null element = %v", arr[2])
	}
}

func TestValue_SetFieldReplaceKeepsPosition(t *testing.T) {
	obj := jsonshape.NewObject()
	obj.SetField("a", jsonshape.NewInt(1))
	obj.SetField("b", jsonshape.NewInt(2))
	obj.SetField("a", jsonshape.NewInt(3))
	if got := strings.Join(obj.Keys(), ","); got != "a,b" {
		t.Errorf("keys = %q", got)
	}
	a, _ := obj.FieldValue("a")
	if a.Int64() != 3 {
		t.Errorf("a = %d", a.Int64())
	}
}
