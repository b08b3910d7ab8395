// Package defaults materializes default values for omitted inputs.
//
// A Default produces one fresh value per invocation. Literal defaults are
// deep-copied out of the schema on every materialization so callers may
// mutate what they receive without affecting later invocations; the schema
// never hands out a live shared container. Factory defaults run a
// zero-argument producer once per call; Expr defaults evaluate a CEL
// expression compiled once at definition time.
package defaults

import (
	"fmt"
	"reflect"
)

// Default produces a fresh default value for one invocation.
// Materialize is called at most once per bind for a given field.
type Default interface {
	Materialize() (any, error)
}

// FactoryFn is a zero-argument producer of a fresh default value.
type FactoryFn func() (any, error)

type literal struct {
	value any
}

// Literal wraps a literal default value. Containers are deep-copied on
// every materialization; two materializations never alias.
func Literal(v any) Default {
	return literal{value: v}
}

func (l literal) Materialize() (any, error) {
	return deepCopy(l.value), nil
}

// Value returns the literal default held by d, if d is one.
// Constraint validation compares literal defaults against literal bounds
// at definition time.
func Value(d Default) (any, bool) {
	l, ok := d.(literal)
	if !ok {
		return nil, false
	}
	return l.value, true
}

type factory struct {
	fn FactoryFn
}

// Factory wraps a zero-argument producer. The producer is defined to
// return a fresh value, so its result is returned directly.
func Factory(fn FactoryFn) Default {
	return factory{fn: fn}
}

func (f factory) Materialize() (value any, err error) {
	// A panicking factory aborts only the invocation that ran it.
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("factory panicked: %v", r)
		}
	}()
	return f.fn()
}

// deepCopy returns an independent copy of v. Slices and maps are copied
// recursively; scalars and structs-by-value pass through unchanged.
func deepCopy(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := deepCopy(rv.Index(i).Interface())
			if elem == nil {
				continue
			}
			out.Index(i).Set(reflect.ValueOf(elem))
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			val := deepCopy(iter.Value().Interface())
			if val == nil {
				out.SetMapIndex(iter.Key(), reflect.Zero(rv.Type().Elem()))
				continue
			}
			out.SetMapIndex(iter.Key(), reflect.ValueOf(val))
		}
		return out.Interface()
	default:
		return v
	}
}
