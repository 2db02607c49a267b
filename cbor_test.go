package jsonable

import (
	"reflect"
	"testing"
)

func TestCBORRoundTrip(t *testing.T) {
	tree := map[string]any{
		"first_name": "Andrew",
		"age":        int64(30),
		"ratio":      0.5,
		"tags":       []any{"a", "b"},
		"nested":     map[string]any{"ok": true, "gone": nil},
	}
	data, err := DumpCBOR(tree)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseCBOR(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, tree) {
		t.Fatalf("round trip mismatch:\ngot  %#v\nwant %#v", got, tree)
	}
}

func TestDumpCBORRejectsNonTreeValues(t *testing.T) {
	if _, err := DumpCBOR(struct{}{}); err == nil {
		t.Fatal("expected error for non-tree value")
	}
}
