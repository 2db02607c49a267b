package jsonable

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want any
	}{
		{"null", `null`, nil},
		{"bool", `true`, true},
		{"int", `42`, int64(42)},
		{"negative int", `-7`, int64(-7)},
		{"float", `2.5`, 2.5},
		{"string", `"hi"`, "hi"},
		{"array", `[1, "a", null]`, []any{int64(1), "a", nil}},
		{"object", `{"a": 1, "b": [true]}`, map[string]any{"a": int64(1), "b": []any{true}}},
		{"nested", `{"o": {"k": "v"}}`, map[string]any{"o": map[string]any{"k": "v"}}},
		{"empty object", `{}`, map[string]any{}},
		{"empty array", `[]`, []any{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse([]byte(tc.in))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "   ", `{"a":`, `tru`, `1 2`} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Fatalf("Parse(%q): expected error", in)
		}
	}
}

func TestDump(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"null", nil, `null`},
		{"bool", false, `false`},
		{"int", int64(42), `42`},
		{"plain int", 7, `7`},
		{"string", "hi", `"hi"`},
		{"escapes", "a\"b\\c\nd", `"a\"b\\c\nd"`},
		{"control", "\x01", `"\u0001"`},
		{"array", []any{int64(1), nil}, `[1,null]`},
		{"sorted keys", map[string]any{"b": int64(2), "a": int64(1)}, `{"a":1,"b":2}`},
		{"nested", map[string]any{"o": []any{map[string]any{}}}, `{"o":[{}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DumpString(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDumpRejectsNonTreeValues(t *testing.T) {
	if _, err := Dump(struct{}{}); err == nil {
		t.Fatal("expected error for non-tree value")
	}
}

func TestDumpParseRoundTrip(t *testing.T) {
	tree := map[string]any{
		"first_name": "Andrew",
		"last_name":  nil,
		"scores":     []any{int64(1), 2.5},
		"nested":     map[string]any{"ok": true},
	}
	data, err := Dump(tree)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, tree) {
		t.Fatalf("round trip mismatch:\ngot  %#v\nwant %#v", got, tree)
	}
}

func BenchmarkParse(b *testing.B) {
	data := []byte(`{"first_name":"Andrew","tags":["a","b","c"],"scores":{"x":1.5,"y":2}}`)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDump(b *testing.B) {
	tree := map[string]any{
		"first_name": "Andrew",
		"tags":       []any{"a", "b", "c"},
		"scores":     map[string]any{"x": 1.5, "y": int64(2)},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Dump(tree); err != nil {
			b.Fatal(err)
		}
	}
}
