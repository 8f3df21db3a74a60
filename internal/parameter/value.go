package parameter

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueType tags the runtime type held by a Value.
type ValueType int

const (
	NoValue ValueType = iota
	NumberValue
	BoolValue
	StringValue
	ListValue
)

// Value is a parameter value: a number, a boolean, a string or a list of strings.
type Value struct {
	typ  ValueType
	num  float64
	flag bool
	str  string
	list []string
}

// Number wraps a numeric value.
func Number(v float64) Value { return Value{typ: NumberValue, num: v} }

// Bool wraps a toggle value.
func Bool(v bool) Value { return Value{typ: BoolValue, flag: v} }

// String wraps a single option or select value.
func String(v string) Value { return Value{typ: StringValue, str: v} }

// List wraps a multi-option value. The slice is copied.
func List(v ...string) Value { return Value{typ: ListValue, list: append([]string(nil), v...)} }

// Type reports which payload v carries.
func (v Value) Type() ValueType { return v.typ }

// IsZero reports whether v carries no payload.
func (v Value) IsZero() bool { return v.typ == NoValue }

// Float returns the numeric payload.
func (v Value) Float() (float64, bool) {
	if v.typ != NumberValue {
		return 0, false
	}
	return v.num, true
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) {
	if v.typ != BoolValue {
		return false, false
	}
	return v.flag, true
}

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	if v.typ != StringValue {
		return "", false
	}
	return v.str, true
}

// Strings returns a copy of the list payload.
func (v Value) Strings() ([]string, bool) {
	if v.typ != ListValue {
		return nil, false
	}
	return append([]string(nil), v.list...), true
}

func (v Value) String() string {
	switch v.typ {
	case NumberValue:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case BoolValue:
		return strconv.FormatBool(v.flag)
	case StringValue:
		return v.str
	case ListValue:
		return fmt.Sprint(v.list)
	default:
		return ""
	}
}

// MarshalJSON encodes the payload as a plain JSON scalar or array.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case NumberValue:
		return json.Marshal(v.num)
	case BoolValue:
		return json.Marshal(v.flag)
	case StringValue:
		return json.Marshal(v.str)
	case ListValue:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON number, boolean, string or string array.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromAny converts a decoded JSON or YAML scalar into a Value.
func FromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Value{}, nil
	case float64:
		return Number(t), nil
	case int:
		return Number(float64(t)), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case []string:
		return List(t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("list values must be strings, got %T", item)
			}
			out = append(out, s)
		}
		return List(out...), nil
	default:
		return Value{}, fmt.Errorf("unsupported parameter value type %T", raw)
	}
}
