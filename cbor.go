package jsonable

import (
	"fmt"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var cborDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// ParseCBOR decodes a CBOR document into the generic value tree, so a
// document edited outside this package can be reconstructed with FromJSON
// regardless of its wire encoding. Byte strings decode as text.
func ParseCBOR(data []byte) (any, error) {
	var v any
	if err := cborDecMode.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return treeFromCBOR(v)
}

// DumpCBOR encodes a value tree as a CBOR document.
func DumpCBOR(v any) ([]byte, error) {
	if KindOf(v) == KindInvalid {
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
	return cbor.Marshal(v)
}

func treeFromCBOR(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool, string, int64, float64:
		return val, nil
	case uint64:
		if val > math.MaxInt64 {
			return float64(val), nil
		}
		return int64(val), nil
	case []byte:
		return string(val), nil
	case []any:
		out := make([]any, len(val))
		for i, el := range val {
			conv, err := treeFromCBOR(el)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, el := range val {
			conv, err := treeFromCBOR(el)
			if err != nil {
				return nil, err
			}
			out[key] = conv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported cbor value type %T", v)
	}
}
