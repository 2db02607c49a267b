package jsonable

// Clone deep-copies a JSON value tree. Scalars are returned as-is; arrays
// and objects are rebuilt so the copy shares no mutable containers with the
// original.
func Clone(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, el := range val {
			out[i] = Clone(el)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, el := range val {
			out[key] = Clone(el)
		}
		return out
	default:
		return v
	}
}
