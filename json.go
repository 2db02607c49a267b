package jsonable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/delaneyj/toolbelt/bytebufferpool"
	"github.com/minio/simdjson-go"
)

// Parse parses JSON text using simdjson-go and returns the generic value
// tree. Whole numbers decode as int64, other numbers as float64.
func Parse(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("json input is empty")
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return scalarFromJSON(trimmed)
	}
	parsed, err := simdjson.Parse(data, nil)
	if err != nil {
		return nil, err
	}
	it := parsed.Iter()
	if it.Advance() != simdjson.TypeRoot {
		return nil, fmt.Errorf("json root not found")
	}
	typ, root, err := it.Root(nil)
	if err != nil {
		return nil, err
	}
	return valueFromJSONIter(typ, root)
}

func scalarFromJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err == nil || err != io.EOF {
		return nil, fmt.Errorf("invalid character after top-level value")
	}
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return val, nil
	case string:
		return val, nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		if f, err := val.Float64(); err == nil {
			return f, nil
		}
		return nil, fmt.Errorf("invalid json number: %s", val)
	default:
		return nil, fmt.Errorf("unsupported scalar json type %T", v)
	}
}

func valueFromJSONIter(typ simdjson.Type, it *simdjson.Iter) (any, error) {
	switch typ {
	case simdjson.TypeNull:
		return nil, nil
	case simdjson.TypeBool:
		return it.Bool()
	case simdjson.TypeInt:
		return it.Int()
	case simdjson.TypeUint:
		v, err := it.Uint()
		if err != nil {
			return nil, err
		}
		if v > math.MaxInt64 {
			return float64(v), nil
		}
		return int64(v), nil
	case simdjson.TypeFloat:
		v, err := it.Float()
		if err != nil {
			return nil, err
		}
		if v >= math.MinInt64 && v <= math.MaxInt64 {
			if math.Trunc(v) == v {
				return int64(v), nil
			}
		}
		return v, nil
	case simdjson.TypeString:
		return it.String()
	case simdjson.TypeObject:
		obj, err := it.Object(nil)
		if err != nil {
			return nil, err
		}
		out := map[string]any{}
		var parseErr error
		err = obj.ForEach(func(key []byte, elem simdjson.Iter) {
			if parseErr != nil {
				return
			}
			val, err := valueFromJSONIter(elem.Type(), &elem)
			if err != nil {
				parseErr = err
				return
			}
			out[string(key)] = val
		}, nil)
		if err != nil {
			return nil, err
		}
		if parseErr != nil {
			return nil, parseErr
		}
		return out, nil
	case simdjson.TypeArray:
		arr, err := it.Array(nil)
		if err != nil {
			return nil, err
		}
		out := []any{}
		iter := arr.Iter()
		for {
			t := iter.Advance()
			if t == simdjson.TypeNone {
				break
			}
			elem := iter
			val, err := valueFromJSONIter(t, &elem)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported json type: %v", typ)
	}
}

// Dump renders a value tree as JSON text. Object keys are emitted in sorted
// order so output is deterministic.
func Dump(v any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := AppendJSON(buf, v); err != nil {
		return nil, err
	}
	out := append([]byte{}, buf.Bytes()...)
	return out, nil
}

// DumpString renders a value tree as a JSON string.
func DumpString(v any) (string, error) {
	data, err := Dump(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// AppendJSON appends JSON text for v to buf.
func AppendJSON(buf *bytebufferpool.ByteBuffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case float64:
		buf.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case json.Number:
		buf.WriteString(val.String())
	case string:
		writeJSONString(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, el := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := AppendJSON(buf, el); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, key)
			buf.WriteByte(':')
			if err := AppendJSON(buf, val[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

func writeJSONString(buf *bytebufferpool.ByteBuffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigit(c >> 4))
				buf.WriteByte(hexDigit(c & 0xF))
			} else {
				buf.WriteByte(c)
			}
		}
	}
	buf.WriteByte('"')
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + (n - 10)
}
