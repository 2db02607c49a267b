package jsonable

import (
	"reflect"
	"testing"
)

func TestApplyPatch(t *testing.T) {
	doc := map[string]any{"first_name": "Andrew"}
	got, err := ApplyPatch(doc, []byte(`[
		{ "op": "test", "path": "/first_name", "value": "Andrew" },
		{ "op": "add", "path": "/last_name", "value": "Marx" }
	]`))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"first_name": "Andrew", "last_name": "Marx"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
	// The input tree is untouched.
	if _, ok := doc["last_name"]; ok {
		t.Fatal("ApplyPatch mutated its input")
	}
}

func TestApplyPatchRemoveReplace(t *testing.T) {
	doc := map[string]any{"a": int64(1), "b": int64(2)}
	got, err := ApplyPatch(doc, []byte(`[
		{ "op": "remove", "path": "/a" },
		{ "op": "replace", "path": "/b", "value": 3 }
	]`))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"b": int64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestApplyPatchFailedTest(t *testing.T) {
	doc := map[string]any{"first_name": "Grace"}
	if _, err := ApplyPatch(doc, []byte(`[
		{ "op": "test", "path": "/first_name", "value": "Andrew" }
	]`)); err == nil {
		t.Fatal("expected failed test op to error")
	}
}

func TestApplyPatchBadPatch(t *testing.T) {
	if _, err := ApplyPatch(map[string]any{}, []byte(`{"op":"add"}`)); err == nil {
		t.Fatal("expected decode error for non-array patch")
	}
}
