// Package schema defines the canonical, immutable description of a
// predictor's accepted inputs and produced output.
//
// A Schema is built exactly once per registered callable, by the signature
// package, and is read-only thereafter: field order is declaration order
// (preserved for positional compatibility), input names are unique, and no
// later component mutates it. Binding and checking are pure functions of
// the Schema, so one Schema is safely shared across concurrent invocations.
package schema

import (
	"github.com/inferkit/sdk/field"
	"github.com/inferkit/sdk/sdkerr"
	"github.com/inferkit/sdk/semtype"
)

// Schema is the canonical description of a callable's interface: ordered
// input field specs plus one output type (or none, for training-style void
// setups).
type Schema struct {
	inputs      []field.Spec
	byName      map[string]int
	output      *semtype.Type
	passthrough bool
}

// New constructs a Schema from ordered input specs and an optional output
// type. A nil output means the callable produces no value. Input names must
// be unique, and every optional input must carry a default; violations are
// DefinitionErrors.
func New(inputs []field.Spec, output *semtype.Type) (*Schema, error) {
	s := &Schema{
		byName: make(map[string]int, len(inputs)),
	}
	for _, in := range inputs {
		if in.Passthrough {
			s.passthrough = true
			continue
		}
		if _, dup := s.byName[in.Name]; dup {
			return nil, sdkerr.Definition(in.Name, "duplicate input name: %s", in.Name)
		}
		if !in.Required && in.Default == nil {
			return nil, sdkerr.Definition(in.Name, "optional input must have a default: %s", in.Name)
		}
		s.byName[in.Name] = len(s.inputs)
		s.inputs = append(s.inputs, in)
	}
	if output != nil {
		out := *output
		s.output = &out
	}
	return s, nil
}

// Inputs returns the declared input specs in declaration order.
// The returned slice is a copy; the Schema itself stays immutable.
func (s *Schema) Inputs() []field.Spec {
	out := make([]field.Spec, len(s.inputs))
	copy(out, s.inputs)
	return out
}

// Len returns the number of declared inputs.
func (s *Schema) Len() int {
	return len(s.inputs)
}

// Field returns the spec for the named input.
func (s *Schema) Field(name string) (field.Spec, bool) {
	i, ok := s.byName[name]
	if !ok {
		return field.Spec{}, false
	}
	return s.inputs[i], true
}

// Output returns the output type. ok is false for a void callable.
func (s *Schema) Output() (semtype.Type, bool) {
	if s.output == nil {
		return semtype.Type{}, false
	}
	return *s.output, true
}

// HasPassthrough reports whether the callable declared an open untyped
// pass-through (an un-annotated variadic keyword parameter), which accepts
// undeclared raw inputs without coercion.
func (s *Schema) HasPassthrough() bool {
	return s.passthrough
}
