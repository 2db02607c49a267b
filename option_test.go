package jsonable

import "testing"

func TestOptionZeroValueIsNone(t *testing.T) {
	var o Option[string]
	if o.IsSome() {
		t.Fatal("zero Option must be None")
	}
	if _, ok := o.Get(); ok {
		t.Fatal("Get on None must report absence")
	}
	if got := o.OrElse("fallback"); got != "fallback" {
		t.Fatalf("OrElse on None: %q", got)
	}
}

func TestOptionSome(t *testing.T) {
	o := Some(42)
	if !o.IsSome() {
		t.Fatal("Some must report presence")
	}
	v, ok := o.Get()
	if !ok || v != 42 {
		t.Fatalf("Get: %v %v", v, ok)
	}
	if got := o.OrElse(0); got != 42 {
		t.Fatalf("OrElse on Some: %d", got)
	}
	if None[int]() == Some(0) {
		t.Fatal("None must differ from Some(zero)")
	}
}
