package field

import (
	"github.com/inferkit/sdk/defaults"
	"github.com/inferkit/sdk/sdkerr"
	"github.com/inferkit/sdk/semtype"
)

// Validate checks a Spec draft for internal consistency at definition time.
// Rules run in a fixed order and the first violation wins:
//
//  1. ge/le only on numeric types (or containers/optionals of them)
//  2. min_length/max_length only on strings and containers
//  3. choices only on scalar string/numeric types (or containers of them)
//  4. choices and length bounds are mutually exclusive
//  5. default=None never stands in for an empty container
//  6. the default value satisfies every declared constraint
func Validate(s Spec) error {
	c := s.Constraints

	if c.GE != nil || c.LE != nil {
		if !s.Type.Unwrap().IsNumeric() {
			return sdkerr.Definition(s.Name, "incompatible input type for ge/le: %s: %s", s.Name, s.Type)
		}
	}

	if c.MinLength != nil || c.MaxLength != nil {
		if !lengthApplies(s.Type) {
			return sdkerr.Definition(s.Name, "incompatible input type for min_length/max_length: %s: %s", s.Name, s.Type)
		}
	}

	if len(c.Choices) > 0 {
		inner := s.Type.Unwrap()
		switch inner.Kind {
		case semtype.Str, semtype.Int, semtype.Float:
		default:
			return sdkerr.Definition(s.Name, "incompatible input type for choices: %s: %s", s.Name, s.Type)
		}
	}

	if len(c.Choices) > 0 && (c.MinLength != nil || c.MaxLength != nil) {
		return sdkerr.Definition(s.Name, "choices and min_length/max_length are mutually exclusive for input: %s", s.Name)
	}

	if s.Default != nil {
		if lit, ok := defaults.Value(s.Default); ok && lit == nil {
			switch s.Type.Kind {
			case semtype.List, semtype.Dict, semtype.Set:
				// None silently changing meaning across calls is exactly the
				// bug the factory form exists to prevent.
				return sdkerr.Definition(s.Name, "error-prone usage of default=None for input: %s", s.Name)
			}
		}

		val, err := s.Default.Materialize()
		if err != nil {
			return sdkerr.Definition(s.Name, "default factory failed for input: %s: %v", s.Name, err)
		}
		if vio := c.CheckValue(s.Type, val); vio != nil {
			if lit, ok := defaults.Value(s.Default); ok && vio.Bound != "" {
				return sdkerr.Definition(s.Name, "default=%v conflicts with %s=%v for input: %s: %s",
					lit, vio.Bound, vio.Limit, s.Name, vio.Message)
			}
			return sdkerr.Definition(s.Name, "invalid default for input: %s: %s", s.Name, vio.Message)
		}
	}

	return nil
}

// lengthApplies reports whether length bounds are meaningful on the type:
// strings and containers, possibly behind an Optional.
func lengthApplies(t semtype.Type) bool {
	if t.Kind == semtype.Optional {
		return lengthApplies(*t.Elem)
	}
	switch t.Kind {
	case semtype.Str, semtype.List, semtype.Dict, semtype.Set:
		return true
	}
	return false
}
