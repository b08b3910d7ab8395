package field

import (
	"strings"
	"testing"

	"github.com/inferkit/sdk/defaults"
	"github.com/inferkit/sdk/semtype"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func TestValidate_BoundsRequireNumericType(t *testing.T) {
	tests := []struct {
		name string
		typ  semtype.Type
		want string
	}{
		{"s", semtype.ListOf(semtype.Of(semtype.Str)), "incompatible input type for ge/le: s: List[str]"},
		{"s", semtype.OptionalOf(semtype.Of(semtype.Str)), "incompatible input type for ge/le: s: Optional[str]"},
		{"s", semtype.Of(semtype.Str), "incompatible input type for ge/le: s: str"},
	}

	for _, tt := range tests {
		err := Validate(Spec{
			Name:        tt.name,
			Type:        tt.typ,
			Required:    true,
			Constraints: Constraints{GE: ptrF(0)},
		})
		if err == nil {
			t.Errorf("%s: expected error", tt.typ)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("expected %q, got %q", tt.want, err.Error())
		}
	}

	// Bounds on containers of numbers are fine.
	err := Validate(Spec{
		Name:        "xs",
		Type:        semtype.ListOf(semtype.Of(semtype.Int)),
		Required:    true,
		Constraints: Constraints{GE: ptrF(0)},
	})
	if err != nil {
		t.Errorf("unexpected error for List[int]: %v", err)
	}
}

func TestValidate_ChoicesAndLengthAreExclusive(t *testing.T) {
	err := Validate(Spec{
		Name:     "mode",
		Type:     semtype.Of(semtype.Str),
		Required: true,
		Constraints: Constraints{
			Choices:   []any{"a", "b"},
			MaxLength: ptrI(10),
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "choices and min_length/max_length are mutually exclusive") {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "mode") {
		t.Errorf("expected message to name the field, got %q", err.Error())
	}
}

func TestValidate_LengthRequiresSequenceType(t *testing.T) {
	err := Validate(Spec{
		Name:        "n",
		Type:        semtype.Of(semtype.Int),
		Required:    true,
		Constraints: Constraints{MaxLength: ptrI(3)},
	})
	if err == nil || !strings.Contains(err.Error(), "incompatible input type for min_length/max_length: n: int") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_DefaultMustSatisfyBounds(t *testing.T) {
	// default [0, 100] with ge=10 on a list-of-int field.
	err := Validate(Spec{
		Name:        "xs",
		Type:        semtype.ListOf(semtype.Of(semtype.Int)),
		Default:     defaults.Literal([]any{int64(0), int64(100)}),
		Constraints: Constraints{GE: ptrF(10)},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "number must be at least 10") {
		t.Errorf("expected bound citation, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "conflicts with ge=10 for input: xs") {
		t.Errorf("expected conflicting pair, got %q", err.Error())
	}

	err = Validate(Spec{
		Name:        "n",
		Type:        semtype.Of(semtype.Int),
		Default:     defaults.Literal(int64(50)),
		Constraints: Constraints{LE: ptrF(10)},
	})
	if err == nil || !strings.Contains(err.Error(), "default=50 conflicts with le=10 for input: n") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_DefaultMustSatisfyChoices(t *testing.T) {
	err := Validate(Spec{
		Name:        "mode",
		Type:        semtype.Of(semtype.Str),
		Default:     defaults.Literal("z"),
		Constraints: Constraints{Choices: []any{"a", "b"}},
	})
	if err == nil || !strings.Contains(err.Error(), "not one of the allowed values") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_DefaultNoneOnContainer(t *testing.T) {
	err := Validate(Spec{
		Name:    "xs",
		Type:    semtype.ListOf(semtype.Of(semtype.Int)),
		Default: defaults.Literal(nil),
	})
	if err == nil || !strings.Contains(err.Error(), "error-prone usage of default=None for input: xs") {
		t.Errorf("unexpected error: %v", err)
	}

	// None on an Optional is fine.
	err = Validate(Spec{
		Name:    "x",
		Type:    semtype.OptionalOf(semtype.Of(semtype.Str)),
		Default: defaults.Literal(nil),
	})
	if err != nil {
		t.Errorf("unexpected error for Optional default=None: %v", err)
	}
}

func TestCheckValue_WalksContainers(t *testing.T) {
	c := Constraints{GE: ptrF(1), LE: ptrF(5)}
	listInt := semtype.ListOf(semtype.Of(semtype.Int))

	if vio := c.CheckValue(listInt, []any{int64(1), int64(5)}); vio != nil {
		t.Errorf("unexpected violation: %v", vio.Message)
	}
	vio := c.CheckValue(listInt, []any{int64(1), int64(9)})
	if vio == nil || vio.Kind != ViolationRange {
		t.Fatalf("expected range violation, got %#v", vio)
	}
	if vio.Message != "number must be at most 5" {
		t.Errorf("unexpected message: %q", vio.Message)
	}
}

func TestCheckValue_SkipsNilOptional(t *testing.T) {
	c := Constraints{GE: ptrF(1)}
	if vio := c.CheckValue(semtype.OptionalOf(semtype.Of(semtype.Int)), nil); vio != nil {
		t.Errorf("expected nil optional to pass, got %v", vio.Message)
	}
}

func TestCheckValue_StringLength(t *testing.T) {
	c := Constraints{MinLength: ptrI(2), MaxLength: ptrI(4)}
	str := semtype.Of(semtype.Str)

	if vio := c.CheckValue(str, "abc"); vio != nil {
		t.Errorf("unexpected violation: %v", vio.Message)
	}
	if vio := c.CheckValue(str, "a"); vio == nil || vio.Kind != ViolationLength {
		t.Error("expected min length violation")
	}
	if vio := c.CheckValue(str, "abcde"); vio == nil || vio.Kind != ViolationLength {
		t.Error("expected max length violation")
	}
}

func TestCheckValue_NumericChoices(t *testing.T) {
	c := Constraints{Choices: []any{int64(1), int64(2)}}
	intT := semtype.Of(semtype.Int)

	// JSON-decoded 2.0 matches the integer choice 2.
	if vio := c.CheckValue(intT, float64(2)); vio != nil {
		t.Errorf("unexpected violation: %v", vio.Message)
	}
	if vio := c.CheckValue(intT, int64(3)); vio == nil || vio.Kind != ViolationChoices {
		t.Error("expected choices violation")
	}
}
