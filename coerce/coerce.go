// Package coerce provides lossless conversions from raw decoded values
// (JSON or yaml unmarshaling output) to the scalar kinds the schema layer
// works with.
//
// Unlike convenience getters that fall back to a default on mismatch,
// every function here reports whether the conversion was exact; validation
// depends on the distinction between "absent" and "wrong type". Numeric
// conversions only succeed when no information is lost: 2.0 converts to
// the integer 2, 2.5 does not.
package coerce

import (
	"encoding/json"
	"reflect"
)

// AsString extracts a string. Only genuine strings convert; numbers are
// never stringified implicitly.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsInt extracts an integer, accepting native integer types, json.Number,
// and floats that carry no fractional part (the usual shape of JSON-decoded
// integers).
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		f := float64(n)
		if f == float64(int64(f)) {
			return int64(f), true
		}
		return 0, false
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		return 0, false
	}
	return 0, false
}

// AsFloat extracts a float, widening from any native numeric type or
// json.Number.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
		return 0, false
	}
	return 0, false
}

// AsBool extracts a boolean. No string or numeric truthiness is applied.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsSlice extracts a []any, handling both the decoded []any shape and
// typed slices via reflection. Strings and byte slices are not treated as
// sequences.
func AsSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsMap extracts a map[string]any, handling both the decoded shape and
// typed string-keyed maps via reflection.
func AsMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
