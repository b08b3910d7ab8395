// Package bind coerces and validates raw invocation values against a
// schema.
//
// Bind turns a raw name→value mapping (typically JSON-decoded) into typed
// call arguments, filling omitted optional inputs from their defaults;
// Check validates a raw output value against the output type. Both are
// pure functions of (schema, raw value): they never mutate the schema, and
// a failure in one invocation cannot affect another, so one schema serves
// any number of concurrent calls without locking.
package bind

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/inferkit/sdk/coerce"
	"github.com/inferkit/sdk/field"
	"github.com/inferkit/sdk/schema"
	"github.com/inferkit/sdk/sdkerr"
	"github.com/inferkit/sdk/semtype"
)

// Bind validates the raw inputs against the schema and returns typed call
// arguments. Declared fields are processed in declaration order and the
// first ValidationError wins; undeclared raw fields are rejected unless
// the schema carries an open pass-through.
func Bind(s *schema.Schema, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))

	for _, spec := range s.Inputs() {
		v, present := raw[spec.Name]
		if !present {
			if spec.Required {
				return nil, sdkerr.MissingField(spec.Name)
			}
			val, err := spec.Default.Materialize()
			if err != nil {
				return nil, sdkerr.FactoryError(spec.Name, err)
			}
			out[spec.Name] = val
		} else {
			typed, verr := coerceValue(spec.Name, spec.Type, v)
			if verr != nil {
				return nil, verr
			}
			out[spec.Name] = typed
		}

		// Constraints are re-checked against the actual bound value, not
		// just the declared default: factory-produced values vary per call
		// and caller-supplied values were never seen at definition time.
		if vio := spec.Constraints.CheckValue(spec.Type, out[spec.Name]); vio != nil {
			return nil, violationError(spec.Name, vio)
		}
	}

	extra := make([]string, 0)
	for name := range raw {
		if _, declared := s.Field(name); !declared {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		if !s.HasPassthrough() {
			return nil, sdkerr.UnknownField(extra[0])
		}
		for _, name := range extra {
			out[name] = raw[name]
		}
	}

	return out, nil
}

// Check validates a raw output value against the output type. A nil output
// is always an error: output types are concrete by construction (the
// resolver rejects Optional outputs), so "no value" is never a result.
// Iterator outputs validate a collected slice of yielded elements.
func Check(t semtype.Type, raw any) (any, error) {
	if raw == nil {
		return nil, sdkerr.TypeMismatch("output", t.String(), "None")
	}
	typed, verr := coerceValue("output", t, raw)
	if verr != nil {
		return nil, verr
	}
	return typed, nil
}

func violationError(name string, vio *field.Violation) *sdkerr.ValidationError {
	switch vio.Kind {
	case field.ViolationChoices:
		return sdkerr.ChoicesViolation(name, vio.Message)
	case field.ViolationLength:
		return sdkerr.LengthViolation(name, vio.Message)
	default:
		return sdkerr.RangeViolation(name, vio.Message)
	}
}

// coerceValue converts one raw value to the semantic type, recursively.
// Coercion is idempotent: a value that already came out of coerceValue
// passes through unchanged.
func coerceValue(name string, t semtype.Type, v any) (any, *sdkerr.ValidationError) {
	switch t.Kind {
	case semtype.Optional:
		if v == nil {
			return nil, nil
		}
		return coerceValue(name, *t.Elem, v)

	case semtype.Bool:
		if b, ok := coerce.AsBool(v); ok {
			return b, nil
		}

	case semtype.Int:
		if n, ok := coerce.AsInt(v); ok {
			return n, nil
		}

	case semtype.Float:
		if f, ok := coerce.AsFloat(v); ok {
			return f, nil
		}

	case semtype.Str:
		if s, ok := coerce.AsString(v); ok {
			return s, nil
		}

	case semtype.Secret:
		switch s := v.(type) {
		case Secret:
			return s, nil
		case string:
			return Secret(s), nil
		}

	case semtype.Path:
		switch p := v.(type) {
		case Path:
			return p, nil
		case string:
			return Path(p), nil
		}

	case semtype.File:
		switch f := v.(type) {
		case File:
			return f, nil
		case string:
			return File{URI: f}, nil
		}

	case semtype.Image:
		switch img := v.(type) {
		case Image:
			return img, nil
		case string:
			return Image{URI: img}, nil
		}

	case semtype.Model:
		return coerceModel(name, t, v)

	case semtype.List, semtype.Iterator:
		if elems, ok := coerce.AsSlice(v); ok {
			out := make([]any, len(elems))
			for i, e := range elems {
				typed, verr := coerceValue(name, *t.Elem, e)
				if verr != nil {
					return nil, verr
				}
				out[i] = typed
			}
			return out, nil
		}

	case semtype.ConcatIterator:
		if elems, ok := coerce.AsSlice(v); ok {
			out := make([]any, len(elems))
			for i, e := range elems {
				s, ok := coerce.AsString(e)
				if !ok {
					return nil, sdkerr.TypeMismatch(name, "str", rawTypeName(e))
				}
				out[i] = s
			}
			return out, nil
		}

	case semtype.Set:
		if elems, ok := coerce.AsSlice(v); ok {
			out := make([]any, len(elems))
			for i, e := range elems {
				typed, verr := coerceValue(name, *t.Elem, e)
				if verr != nil {
					return nil, verr
				}
				for _, prev := range out[:i] {
					if scalarEqual(prev, typed) {
						return nil, sdkerr.TypeMismatch(name, t.String(), "list with duplicate elements")
					}
				}
				out[i] = typed
			}
			return out, nil
		}

	case semtype.Dict:
		if m, ok := coerce.AsMap(v); ok {
			out := make(map[string]any, len(m))
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				typed, verr := coerceValue(name, *t.Elem, m[k])
				if verr != nil {
					return nil, verr
				}
				out[k] = typed
			}
			return out, nil
		}

	case semtype.Union:
		// First matching alternative in declaration order wins.
		for _, alt := range t.Alts {
			if typed, verr := coerceValue(name, alt, v); verr == nil {
				return typed, nil
			}
		}

	case semtype.Literal:
		for _, allowed := range t.Values {
			if scalarEqual(allowed, v) {
				return v, nil
			}
		}
	}

	return nil, sdkerr.TypeMismatch(name, t.String(), rawTypeName(v))
}

func coerceModel(name string, t semtype.Type, v any) (any, *sdkerr.ValidationError) {
	m, ok := coerce.AsMap(v)
	if !ok {
		return nil, sdkerr.TypeMismatch(name, t.String(), rawTypeName(v))
	}

	out := make(map[string]any, len(m))
	declared := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		declared[f.Name] = true
		path := name + "." + f.Name
		fv, present := m[f.Name]
		if !present {
			if f.Required {
				return nil, sdkerr.MissingField(path)
			}
			continue
		}
		typed, verr := coerceValue(path, f.Type, fv)
		if verr != nil {
			return nil, verr
		}
		out[f.Name] = typed
	}

	extra := make([]string, 0)
	for k := range m {
		if !declared[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, sdkerr.UnknownField(name + "." + extra[0])
	}

	return out, nil
}

// scalarEqual compares two scalar values, treating numerics numerically so
// 2 equals 2.0 regardless of decoded representation.
func scalarEqual(a, b any) bool {
	af, aNum := coerce.AsFloat(a)
	bf, bNum := coerce.AsFloat(b)
	if aNum && bNum {
		return af == bf
	}
	if aNum != bNum {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() {
		return !ra.IsValid() && !rb.IsValid()
	}
	if !ra.Comparable() || !rb.Comparable() {
		return false
	}
	return a == b
}

// rawTypeName names a raw value's shape in annotation vocabulary for
// mismatch messages.
func rawTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "None"
	case bool:
		return "bool"
	case string:
		return "str"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	case []any:
		return "list"
	case map[string]any:
		return "dict"
	case Secret:
		return "Secret"
	case Path:
		return "Path"
	case File:
		return "File"
	case Image:
		return "Image"
	default:
		return fmt.Sprintf("%T", v)
	}
}
