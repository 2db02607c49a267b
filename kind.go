package jsonable

import "encoding/json"

// Kind classifies a value in the generic JSON tree.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindNull:   "null",
		KindBool:   "bool",
		KindNumber: "number",
		KindString: "string",
		KindArray:  "array",
		KindObject: "object",
	}[k]
	if ok {
		return s
	}
	return "<invalid>"
}

// Kinds returns all valid kinds.
func Kinds() []Kind {
	return []Kind{
		KindNull,
		KindBool,
		KindNumber,
		KindString,
		KindArray,
		KindObject,
	}
}

// KindOf reports the JSON kind of v, or KindInvalid for values that are not
// part of the tree representation.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindInvalid
	}
}

// IsLeaf reports whether k is a non-container kind.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindArray, KindObject:
		return false
	default:
		return true
	}
}
