package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Kind identifies the shape of a decoded JSON value
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindList
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a decoded JSON node. Its kind is fixed when the body is decoded,
// so callers switch on Kind instead of probing the dynamic type.
type Value struct {
	kind Kind
	raw  interface{}
}

// Null is the zero Value
var Null = Value{}

// DecodeValue parses a JSON document into a Value. Numbers keep their
// textual form so large ids survive without float rounding.
func DecodeValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Null, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Null, fmt.Errorf("unexpected data after JSON document")
	}
	return valueOf(raw), nil
}

func valueOf(raw interface{}) Value {
	switch raw.(type) {
	case nil:
		return Null
	case map[string]interface{}:
		return Value{kind: KindObject, raw: raw}
	case []interface{}:
		return Value{kind: KindList, raw: raw}
	case string:
		return Value{kind: KindString, raw: raw}
	case json.Number, float64, int, int64:
		return Value{kind: KindNumber, raw: raw}
	case bool:
		return Value{kind: KindBool, raw: raw}
	default:
		return Value{kind: KindNull}
	}
}

// Kind returns the shape of the value
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null or absent
func (v Value) IsNull() bool { return v.kind == KindNull }

// Field returns the named member of an object. ok is false when the value
// is not an object, the key is missing, or the member is null.
func (v Value) Field(key string) (Value, bool) {
	obj, isObj := v.raw.(map[string]interface{})
	if !isObj {
		return Null, false
	}
	member, found := obj[key]
	if !found || member == nil {
		return Null, false
	}
	return valueOf(member), true
}

// Items returns the elements of a list, or nil for any other kind
func (v Value) Items() []Value {
	list, ok := v.raw.([]interface{})
	if !ok {
		return nil
	}
	items := make([]Value, len(list))
	for i, item := range list {
		items[i] = valueOf(item)
	}
	return items
}

// Len returns the number of members of an object or elements of a list
func (v Value) Len() int {
	switch raw := v.raw.(type) {
	case map[string]interface{}:
		return len(raw)
	case []interface{}:
		return len(raw)
	default:
		return 0
	}
}

// String renders scalars as text and structured values as compact JSON
func (v Value) String() string {
	switch raw := v.raw.(type) {
	case nil:
		return ""
	case string:
		return raw
	case json.Number:
		return raw.String()
	case bool:
		return strconv.FormatBool(raw)
	default:
		data, err := json.Marshal(raw)
		if err != nil {
			return fmt.Sprintf("%v", raw)
		}
		return string(data)
	}
}

// Int returns a numeric value as int64
func (v Value) Int() (int64, bool) {
	switch raw := v.raw.(type) {
	case json.Number:
		n, err := raw.Int64()
		if err != nil {
			f, ferr := raw.Float64()
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return n, true
	case float64:
		return int64(raw), true
	case int:
		return int64(raw), true
	case int64:
		return raw, true
	default:
		return 0, false
	}
}

// Interface returns the underlying decoded data
func (v Value) Interface() interface{} { return v.raw }

// Decode converts the value into target using the encoding/json rules
func (v Value) Decode(target interface{}) error {
	data, err := json.Marshal(v.raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}
