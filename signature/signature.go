// Package signature inspects a language-neutral description of a predictor
// or trainer callable and assembles its canonical Schema.
//
// The SDK never reflects over live user code. A host-language adapter (such
// as the component package's yaml loader) supplies a Description (parameter
// names, annotations, defaults, constraint metadata and the return
// annotation) equivalent to what introspecting the hosting language would
// yield. Inspect validates the whole signature first, then each parameter
// in declaration order, stopping at the first DefinitionError; a Schema
// exists only when every rule passed.
package signature

import (
	"github.com/inferkit/sdk/defaults"
	"github.com/inferkit/sdk/field"
	"github.com/inferkit/sdk/schema"
	"github.com/inferkit/sdk/sdkerr"
	"github.com/inferkit/sdk/semtype"
)

// Variadic marks a parameter's variadic form.
type Variadic int

const (
	// VariadicNone is an ordinary parameter.
	VariadicNone Variadic = iota

	// VariadicArgs is a catch-all positional parameter (*args).
	VariadicArgs

	// VariadicKwargs is a catch-all keyword parameter (**kwargs).
	VariadicKwargs
)

// Param describes one declared parameter.
type Param struct {
	Name string

	// Annotation is the declared type; nil when the parameter carries none.
	Annotation *semtype.Annotation

	// HasDefault marks a literal default; Default holds its value (which
	// may itself be nil, for an explicit None).
	HasDefault bool
	Default    any

	// Factory is a zero-argument producer default; FactoryExpr is a CEL
	// expression default compiled at inspection time. At most one of the
	// three default forms is set.
	Factory     defaults.FactoryFn
	FactoryExpr string

	// Constraint metadata attached to the parameter declaration.
	GE          *float64
	LE          *float64
	MinLength   *int
	MaxLength   *int
	Choices     []any
	Description string
	Deprecated  bool

	Variadic Variadic
}

// Method describes one method of the callable: its receiver parameter name
// (empty when the description carries none), its remaining parameters in
// declaration order, and its return annotation (nil when absent).
type Method struct {
	Receiver string
	Params   []Param
	Return   *semtype.Annotation
}

// Description is the structured, introspection-equivalent description of a
// predictor or trainer: an optional setup method plus the predict/train
// entry point.
type Description struct {
	Name string

	// DeferredAnnotations marks a defining module that carried its
	// annotations as deferred strings. Such descriptions are rejected
	// outright; deferred text defeats runtime type introspection.
	DeferredAnnotations bool

	Setup *Method
	Entry Method
}

// Inspect validates the description and assembles the immutable Schema,
// or returns the first DefinitionError encountered. Errors are never
// accumulated; one malformed clause fails the whole callable.
func Inspect(d Description) (*schema.Schema, error) {
	if d.DeferredAnnotations {
		return nil, sdkerr.Definition("", "deferred annotations are not supported")
	}

	if d.Setup != nil {
		if err := validateSetup(d.Setup); err != nil {
			return nil, err
		}
	}

	inputs := make([]field.Spec, 0, len(d.Entry.Params))
	for _, p := range d.Entry.Params {
		spec, err := inspectParam(p)
		if err != nil {
			return nil, err
		}
		if spec != nil {
			inputs = append(inputs, *spec)
		}
	}

	output, err := inspectReturn(d.Entry.Return)
	if err != nil {
		return nil, err
	}

	return schema.New(inputs, output)
}

// validateSetup enforces the whole-signature rules on the setup method:
// instance receiver first, no variadic catch-alls, explicitly-typed
// keyword arguments only, and no return value.
func validateSetup(m *Method) error {
	if m.Receiver != "self" {
		return sdkerr.Definition("setup", "must have 'self' first argument")
	}
	for _, p := range m.Params {
		switch p.Variadic {
		case VariadicArgs:
			return sdkerr.Definition(p.Name, "must not have *args")
		case VariadicKwargs:
			return sdkerr.Definition(p.Name, "must not have **kwargs")
		}
		if p.Annotation == nil {
			return sdkerr.Definition(p.Name, "setup() arguments must have type annotations: %s", p.Name)
		}
		if _, err := semtype.Resolve(p.Name, *p.Annotation, hintFor(p)); err != nil {
			return err
		}
	}
	if m.Return != nil && m.Return.Name != "None" {
		return sdkerr.Definition("setup", "must return None")
	}
	return nil
}

// inspectParam turns one entry-point parameter into a field spec. It
// returns nil for no spec only in impossible variadic cases; an untyped
// **kwargs becomes the open pass-through spec.
func inspectParam(p Param) (*field.Spec, error) {
	switch p.Variadic {
	case VariadicArgs:
		return nil, sdkerr.Definition(p.Name, "must not have *args")
	case VariadicKwargs:
		// Untyped keyword catch-alls are permitted on the entry point and
		// accept undeclared inputs without coercion.
		return &field.Spec{Name: p.Name, Passthrough: true}, nil
	}

	if p.Annotation == nil {
		return nil, sdkerr.Definition(p.Name, "missing type annotation for input: %s", p.Name)
	}

	t, err := semtype.Resolve(p.Name, *p.Annotation, hintFor(p))
	if err != nil {
		return nil, err
	}

	def, err := defaultFor(p)
	if err != nil {
		return nil, err
	}

	spec := field.Spec{
		Name:     p.Name,
		Type:     t,
		Required: def == nil,
		Default:  def,
		Constraints: field.Constraints{
			GE:          p.GE,
			LE:          p.LE,
			MinLength:   p.MinLength,
			MaxLength:   p.MaxLength,
			Choices:     p.Choices,
			Description: p.Description,
			Deprecated:  p.Deprecated,
		},
	}
	if err := field.Validate(spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func defaultFor(p Param) (defaults.Default, error) {
	switch {
	case p.Factory != nil:
		return defaults.Factory(p.Factory), nil
	case p.FactoryExpr != "":
		d, err := defaults.Expr(p.FactoryExpr)
		if err != nil {
			return nil, sdkerr.Definition(p.Name, "invalid default factory for input: %s: %v", p.Name, err)
		}
		return d, nil
	case p.HasDefault:
		return defaults.Literal(p.Default), nil
	}
	return nil, nil
}

func hintFor(p Param) semtype.Hint {
	return semtype.Hint{Default: p.Default, HasDefault: p.HasDefault}
}

func inspectReturn(ann *semtype.Annotation) (*semtype.Type, error) {
	if ann == nil || ann.Name == "None" {
		return nil, nil
	}
	t, err := semtype.ResolveReturn(*ann)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
