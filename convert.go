package jsonable

import (
	"encoding/json"
	"math"
	"strconv"
)

// A Converter decodes a JSON tree value into T, reporting failures against
// the field path it was handed. Generated FromJSON code is a composition of
// the converters below.
type Converter[T any] func(v any, path string) (T, error)

// An Encoder turns a T into a JSON tree value. It is the ToJSON dual of a
// Converter and never fails.
type Encoder[T any] func(v T) any

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// String converts a JSON string.
func String(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch(path, "string", v)
	}
	return s, nil
}

// Bool converts a JSON bool.
func Bool(v any, path string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch(path, "bool", v)
	}
	return b, nil
}

// Int64 converts an integral JSON number. The tree may carry numbers as
// int, int64, float64 or json.Number depending on how it was produced;
// any of those is accepted as long as the value is a whole number in range.
func Int64(v any, path string) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if math.Trunc(n) == n && n >= math.MinInt64 && n <= math.MaxInt64 {
			return int64(n), nil
		}
		return 0, mismatch(path, "integer", v)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, mismatch(path, "integer", v)
		}
		return i, nil
	default:
		return 0, mismatch(path, "integer", v)
	}
}

// Int converts an integral JSON number into the platform int.
func Int(v any, path string) (int, error) {
	i, err := Int64(v, path)
	if err != nil {
		return 0, err
	}
	if i < math.MinInt || i > math.MaxInt {
		return 0, mismatch(path, "integer", v)
	}
	return int(i), nil
}

// Float64 converts any JSON number.
func Float64(v any, path string) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, mismatch(path, "number", v)
		}
		return f, nil
	default:
		return 0, mismatch(path, "number", v)
	}
}

// Object requires v to be a JSON object and returns it.
func Object(v any, path string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, mismatch(path, "object", v)
	}
	return obj, nil
}

// Array requires v to be a JSON array and returns it.
func Array(v any, path string) ([]any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, mismatch(path, "array", v)
	}
	return arr, nil
}

// Any passes a tree value through unchanged apart from a deep copy, so the
// decoded struct never aliases caller-owned containers.
func Any(v any, path string) (any, error) {
	if KindOf(v) == KindInvalid {
		return nil, mismatch(path, "json value", v)
	}
	return Clone(v), nil
}

// SliceOf converts a JSON array element-wise. An empty array decodes to a
// nil slice, mirroring EncodeSliceOf on the way out.
func SliceOf[T any](elem Converter[T]) Converter[[]T] {
	return func(v any, path string) ([]T, error) {
		arr, err := Array(v, path)
		if err != nil {
			return nil, err
		}
		if len(arr) == 0 {
			return nil, nil
		}
		out := make([]T, 0, len(arr))
		for i, el := range arr {
			t, err := elem(el, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil
	}
}

// MapOf converts a JSON object value-wise into a string-keyed map. An empty
// object decodes to a nil map.
func MapOf[T any](elem Converter[T]) Converter[map[string]T] {
	return func(v any, path string) (map[string]T, error) {
		obj, err := Object(v, path)
		if err != nil {
			return nil, err
		}
		if len(obj) == 0 {
			return nil, nil
		}
		out := make(map[string]T, len(obj))
		for key, el := range obj {
			t, err := elem(el, childPath(path, key))
			if err != nil {
				return nil, err
			}
			out[key] = t
		}
		return out, nil
	}
}

// PtrOf converts JSON null to a nil pointer and anything else through elem.
func PtrOf[T any](elem Converter[T]) Converter[*T] {
	return func(v any, path string) (*T, error) {
		if v == nil {
			return nil, nil
		}
		t, err := elem(v, path)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
}

// OptionOf converts JSON null to None and anything else through elem.
func OptionOf[T any](elem Converter[T]) Converter[Option[T]] {
	return func(v any, path string) (Option[T], error) {
		if v == nil {
			return None[T](), nil
		}
		t, err := elem(v, path)
		if err != nil {
			return None[T](), err
		}
		return Some(t), nil
	}
}

// StructOf converts through the generated FromJSON of a nested type,
// qualifying its failures with the field path.
func StructOf[T any, PT interface {
	*T
	FromJSONer
}]() Converter[T] {
	return func(v any, path string) (T, error) {
		var out T
		if err := PT(&out).FromJSON(v); err != nil {
			var zero T
			if path == "" {
				return zero, err
			}
			return zero, &FieldError{Path: path, Err: err}
		}
		return out, nil
	}
}

// EncodeString is the Encoder for string fields.
func EncodeString(v string) any { return v }

// EncodeBool is the Encoder for bool fields.
func EncodeBool(v bool) any { return v }

// EncodeInt is the Encoder for int fields.
func EncodeInt(v int) any { return v }

// EncodeInt64 is the Encoder for int64 fields.
func EncodeInt64(v int64) any { return v }

// EncodeFloat64 is the Encoder for float64 fields.
func EncodeFloat64(v float64) any { return v }

// EncodeAny deep-copies a tree value held in an any field.
func EncodeAny(v any) any { return Clone(v) }

// EncodeSliceOf encodes a slice element-wise into a JSON array. A nil slice
// encodes to an empty array.
func EncodeSliceOf[T any](elem Encoder[T]) Encoder[[]T] {
	return func(s []T) any {
		arr := make([]any, 0, len(s))
		for _, el := range s {
			arr = append(arr, elem(el))
		}
		return arr
	}
}

// EncodeMapOf encodes a string-keyed map value-wise into a JSON object.
func EncodeMapOf[T any](elem Encoder[T]) Encoder[map[string]T] {
	return func(m map[string]T) any {
		obj := make(map[string]any, len(m))
		for key, el := range m {
			obj[key] = elem(el)
		}
		return obj
	}
}

// EncodePtrOf encodes a nil pointer as JSON null and dereferences otherwise.
func EncodePtrOf[T any](elem Encoder[T]) Encoder[*T] {
	return func(p *T) any {
		if p == nil {
			return nil
		}
		return elem(*p)
	}
}

// EncodeOptionOf encodes None as JSON null, matching OptionOf on the way in.
func EncodeOptionOf[T any](elem Encoder[T]) Encoder[Option[T]] {
	return func(o Option[T]) any {
		v, ok := o.Get()
		if !ok {
			return nil
		}
		return elem(v)
	}
}
