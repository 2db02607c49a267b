package jsonable

// JSONer converts a typed value into a generic JSON value tree. Generated
// implementations never fail and never share mutable containers with the
// receiver.
type JSONer interface {
	ToJSON() any
}

// FromJSONer populates the receiver from a generic JSON value tree. The
// input is read-only; on error the receiver is left unchanged.
type FromJSONer interface {
	FromJSON(v any) error
}

// Jsonable is the pair of conversion operations every generated type
// provides.
type Jsonable interface {
	JSONer
	FromJSONer
}

// Decode constructs a T from a generic JSON value tree.
func Decode[T any, PT interface {
	*T
	FromJSONer
}](v any) (T, error) {
	var out T
	if err := PT(&out).FromJSON(v); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
