// Package jsonutil provides shared utilities for JSON parsing patterns:
// error context, typed lookups over untyped objects, and string enums.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// DecodeObject decodes data as a JSON object into an untyped map.
// Numbers are kept as json.Number so integer fields can be told apart from
// fractional ones. Returns an error if data is not an object.
func DecodeObject(data []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("expected JSON object, got null")
	}
	return m, nil
}

// GetString safely extracts a string value from a map[string]interface{}.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]interface{}, key string) string {
	s, _ := LookupString(m, key)
	return s
}

// LookupString returns the string stored under key and whether it was present
// with a string value.
func LookupString(m map[string]interface{}, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// LookupBool returns the bool stored under key and whether it was present
// with a bool value.
func LookupBool(m map[string]interface{}, key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}

// LookupInt returns the integer stored under key. Whole float64 values and
// integral json.Number values are accepted; fractional numbers and numbers
// outside the range of int are not.
func LookupInt(m map[string]interface{}, key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			if n < math.MinInt || n > math.MaxInt {
				return 0, false
			}
			return int(n), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(v)
	default:
		return 0, false
	}
}

// floatToInt converts f when it is a whole number that int can hold.
// -math.MinInt is 2^63 (or 2^31), exactly representable as a float64.
func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

// LookupStrings returns the array of strings stored under key. Every element
// must be a string; a single non-string element fails the lookup.
func LookupStrings(m map[string]interface{}, key string) ([]string, bool) {
	switch v := m[key].(type) {
	case []string:
		return append([]string(nil), v...), true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// StringEnum is a constraint for enum types that have a String() method.
type StringEnum interface {
	String() string
}

// MarshalEnumJSON marshals an enum value to JSON by converting it to its string representation.
func MarshalEnumJSON[T StringEnum](v T) ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalEnumJSON unmarshals an enum value from JSON by parsing the string representation.
// parseFunc should convert a string to the enum value, or return an error if the string is invalid.
func UnmarshalEnumJSON[T StringEnum](data []byte, parseFunc func(string) (T, error)) (T, error) {
	var zero T
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return zero, err
	}
	return parseFunc(s)
}
