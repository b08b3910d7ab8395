// Package field defines per-input specifications and their definition-time
// constraint validation.
//
// A Spec ties one declared input (or the output) to its semantic type,
// requiredness, default and constraints. Validate enforces the rules that
// make a Spec internally consistent: bounds only on types where they mean
// something, choices and length limits never together, and a default that
// itself satisfies every declared constraint. A Spec that passed Validate
// never produces a constraint surprise at bind time that was knowable at
// definition time.
package field

import (
	"fmt"

	"github.com/inferkit/sdk/coerce"
	"github.com/inferkit/sdk/defaults"
	"github.com/inferkit/sdk/semtype"
)

// Constraints are the optional per-field restrictions. Nil pointers and
// empty slices mean "not declared".
type Constraints struct {
	// GE and LE bound numeric values inclusively.
	GE *float64
	LE *float64

	// MinLength and MaxLength bound string or container lengths.
	MinLength *int
	MaxLength *int

	// Choices restricts a value to an enumerated set.
	Choices []any

	Description string
	Deprecated  bool
}

// Empty reports whether no constraint is declared.
func (c Constraints) Empty() bool {
	return c.GE == nil && c.LE == nil && c.MinLength == nil && c.MaxLength == nil && len(c.Choices) == 0
}

// Spec describes one input parameter or output field.
// A Spec inside a schema is read-only; binding never mutates it.
type Spec struct {
	Name        string
	Type        semtype.Type
	Required    bool
	Default     defaults.Default
	Constraints Constraints

	// Passthrough marks the open untyped field created by an un-annotated
	// variadic keyword parameter on the entry point. A passthrough spec
	// accepts any otherwise-undeclared raw input without coercion.
	Passthrough bool
}

// ViolationKind distinguishes the constraint families a value can violate.
type ViolationKind int

const (
	ViolationRange ViolationKind = iota
	ViolationLength
	ViolationChoices
)

// Violation reports one constraint failure on a concrete value. The same
// check runs at definition time against defaults (becoming a
// DefinitionError) and at bind time against actual values (becoming a
// ValidationError), so the message text is shared.
type Violation struct {
	Kind    ViolationKind
	Message string

	// Bound names the violated constraint ("ge", "le", "min_length",
	// "max_length") and Limit its declared value, for conflict reporting.
	Bound string
	Limit any
}

// CheckValue validates a concrete value against the constraints, walking
// containers and skipping nil optionals. The value is expected in raw
// decoded shape (scalars, []any, map[string]any).
func (c Constraints) CheckValue(t semtype.Type, v any) *Violation {
	if c.Empty() {
		return nil
	}
	if v == nil {
		return nil
	}

	switch t.Kind {
	case semtype.Optional:
		return c.CheckValue(*t.Elem, v)
	case semtype.List, semtype.Set:
		if vio := c.checkLength(v); vio != nil {
			return vio
		}
		elems, ok := coerce.AsSlice(v)
		if !ok {
			return nil
		}
		for _, e := range elems {
			if vio := c.CheckValue(*t.Elem, e); vio != nil {
				return vio
			}
		}
		return nil
	case semtype.Dict:
		if vio := c.checkLength(v); vio != nil {
			return vio
		}
		m, ok := coerce.AsMap(v)
		if !ok {
			return nil
		}
		for _, e := range m {
			if vio := c.CheckValue(*t.Elem, e); vio != nil {
				return vio
			}
		}
		return nil
	}

	if len(c.Choices) > 0 {
		if !containsValue(c.Choices, v) {
			return &Violation{
				Kind:    ViolationChoices,
				Message: fmt.Sprintf("value %v is not one of the allowed values: %v", v, c.Choices),
			}
		}
	}

	if t.IsNumeric() {
		if num, ok := coerce.AsFloat(v); ok {
			if c.GE != nil && num < *c.GE {
				return &Violation{
					Kind:    ViolationRange,
					Message: fmt.Sprintf("number must be at least %v", *c.GE),
					Bound:   "ge",
					Limit:   *c.GE,
				}
			}
			if c.LE != nil && num > *c.LE {
				return &Violation{
					Kind:    ViolationRange,
					Message: fmt.Sprintf("number must be at most %v", *c.LE),
					Bound:   "le",
					Limit:   *c.LE,
				}
			}
		}
	}

	if t.Kind == semtype.Str {
		if s, ok := coerce.AsString(v); ok {
			if c.MinLength != nil && len(s) < *c.MinLength {
				return &Violation{
					Kind:    ViolationLength,
					Message: fmt.Sprintf("length must be at least %d", *c.MinLength),
					Bound:   "min_length",
					Limit:   *c.MinLength,
				}
			}
			if c.MaxLength != nil && len(s) > *c.MaxLength {
				return &Violation{
					Kind:    ViolationLength,
					Message: fmt.Sprintf("length must be at most %d", *c.MaxLength),
					Bound:   "max_length",
					Limit:   *c.MaxLength,
				}
			}
		}
	}

	return nil
}

func (c Constraints) checkLength(v any) *Violation {
	n := -1
	if elems, ok := coerce.AsSlice(v); ok {
		n = len(elems)
	} else if m, ok := coerce.AsMap(v); ok {
		n = len(m)
	}
	if n < 0 {
		return nil
	}
	if c.MinLength != nil && n < *c.MinLength {
		return &Violation{
			Kind:    ViolationLength,
			Message: fmt.Sprintf("length must be at least %d", *c.MinLength),
			Bound:   "min_length",
			Limit:   *c.MinLength,
		}
	}
	if c.MaxLength != nil && n > *c.MaxLength {
		return &Violation{
			Kind:    ViolationLength,
			Message: fmt.Sprintf("length must be at most %d", *c.MaxLength),
			Bound:   "max_length",
			Limit:   *c.MaxLength,
		}
	}
	return nil
}

// containsValue reports membership of v in the choice set, comparing
// numeric values numerically so 2 matches 2.0.
func containsValue(choices []any, v any) bool {
	vf, vIsNum := coerce.AsFloat(v)
	for _, choice := range choices {
		if cf, ok := coerce.AsFloat(choice); ok && vIsNum {
			if cf == vf {
				return true
			}
			continue
		}
		if choice == v {
			return true
		}
	}
	return false
}
