package jsonable

import (
	"encoding/json"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		in   any
		want Kind
	}{
		{nil, KindNull},
		{true, KindBool},
		{int64(1), KindNumber},
		{7, KindNumber},
		{2.5, KindNumber},
		{json.Number("3"), KindNumber},
		{"s", KindString},
		{[]any{}, KindArray},
		{map[string]any{}, KindObject},
		{struct{}{}, KindInvalid},
		{[]string{}, KindInvalid},
	}
	for _, tc := range cases {
		if got := KindOf(tc.in); got != tc.want {
			t.Fatalf("KindOf(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestKindString(t *testing.T) {
	for _, k := range Kinds() {
		if k.String() == "<invalid>" {
			t.Fatalf("valid kind %d has no name", k)
		}
	}
	if KindInvalid.String() != "<invalid>" {
		t.Fatal("invalid kind must render as <invalid>")
	}
	if KindObject.IsLeaf() || !KindString.IsLeaf() {
		t.Fatal("leaf classification wrong")
	}
}
