package jsonable

import (
	"reflect"
	"testing"
)

func TestClone(t *testing.T) {
	in := map[string]any{
		"scalar": "x",
		"arr":    []any{int64(1), map[string]any{"k": true}},
	}
	got := Clone(in)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("clone differs: %#v", got)
	}
	got.(map[string]any)["arr"].([]any)[1].(map[string]any)["k"] = false
	if in["arr"].([]any)[1].(map[string]any)["k"] != true {
		t.Fatal("clone shares containers with original")
	}
}

func TestCloneScalars(t *testing.T) {
	for _, v := range []any{nil, true, int64(3), 2.5, "s"} {
		if got := Clone(v); got != v {
			t.Fatalf("Clone(%#v) = %#v", v, got)
		}
	}
}
