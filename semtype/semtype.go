package semtype

import (
	"fmt"
	"strings"
)

// Kind identifies one member of the closed set of semantic types.
type Kind int

const (
	Invalid Kind = iota
	Bool
	Int
	Float
	Str
	Secret
	Path
	File
	Image
	Model
	List
	Dict
	Set
	Optional
	Union
	Literal
	Iterator
	ConcatIterator
)

// Type is one node of a semantic type tree. Trees are finite and built only
// by the resolver or the constructor helpers; treat a Type as read-only once
// constructed.
//
// Iterator and ConcatIterator appear only at the root of a return type,
// never nested inside another container; ConcatIterator's element type is
// always Str. The resolver enforces both.
type Type struct {
	Kind Kind

	// Elem is the element type for List, Set, Optional, Iterator and
	// ConcatIterator, and the value type for Dict (keys are always strings).
	Elem *Type

	// Alts are the Union alternatives, in declaration order.
	Alts []Type

	// Values are the allowed Literal values.
	Values []any

	// Name and Fields describe a Model (a user-defined nested record).
	Name   string
	Fields []ModelField
}

// ModelField is one field of a Model type.
type ModelField struct {
	Name        string
	Type        Type
	Required    bool
	Description string
}

// Of returns a scalar Type of the given kind.
func Of(k Kind) Type {
	return Type{Kind: k}
}

// ListOf returns a List with the given element type.
func ListOf(elem Type) Type {
	return Type{Kind: List, Elem: &elem}
}

// DictOf returns a Dict with string keys and the given value type.
func DictOf(value Type) Type {
	return Type{Kind: Dict, Elem: &value}
}

// SetOf returns a Set with the given element type.
func SetOf(elem Type) Type {
	return Type{Kind: Set, Elem: &elem}
}

// OptionalOf returns an Optional wrapping the given type.
func OptionalOf(inner Type) Type {
	return Type{Kind: Optional, Elem: &inner}
}

// UnionOf returns a Union over the given alternatives, order preserved.
func UnionOf(alts ...Type) Type {
	return Type{Kind: Union, Alts: alts}
}

// LiteralOf returns a Literal over the given allowed values.
func LiteralOf(values ...any) Type {
	return Type{Kind: Literal, Values: values}
}

// IteratorOf returns an Iterator with the given element type.
func IteratorOf(elem Type) Type {
	return Type{Kind: Iterator, Elem: &elem}
}

// ConcatIteratorOf returns the string-concatenating iterator type. Its
// element type is fixed to Str.
func ConcatIteratorOf() Type {
	elem := Of(Str)
	return Type{Kind: ConcatIterator, Elem: &elem}
}

// ModelOf returns a Model with the given name and fields, order preserved.
func ModelOf(name string, fields ...ModelField) Type {
	return Type{Kind: Model, Name: name, Fields: fields}
}

// String renders the type in annotation form, e.g. "int", "List[str]",
// "Optional[str]", "Dict[str, int]", "Literal['a', 'b']".
func (t Type) String() string {
	switch t.Kind {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case Secret:
		return "Secret"
	case Path:
		return "Path"
	case File:
		return "File"
	case Image:
		return "Image"
	case Model:
		if t.Name != "" {
			return t.Name
		}
		return "Model"
	case List:
		return fmt.Sprintf("List[%s]", t.Elem)
	case Dict:
		return fmt.Sprintf("Dict[str, %s]", t.Elem)
	case Set:
		return fmt.Sprintf("Set[%s]", t.Elem)
	case Optional:
		return fmt.Sprintf("Optional[%s]", t.Elem)
	case Union:
		parts := make([]string, len(t.Alts))
		for i, a := range t.Alts {
			parts[i] = a.String()
		}
		return fmt.Sprintf("Union[%s]", strings.Join(parts, ", "))
	case Literal:
		parts := make([]string, len(t.Values))
		for i, v := range t.Values {
			if s, ok := v.(string); ok {
				parts[i] = fmt.Sprintf("'%s'", s)
			} else {
				parts[i] = fmt.Sprintf("%v", v)
			}
		}
		return fmt.Sprintf("Literal[%s]", strings.Join(parts, ", "))
	case Iterator:
		return fmt.Sprintf("Iterator[%s]", t.Elem)
	case ConcatIterator:
		return "ConcatenateIterator[str]"
	default:
		return "invalid"
	}
}

// Equal reports whether two type trees are structurally identical.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind || t.Name != other.Name {
		return false
	}
	if (t.Elem == nil) != (other.Elem == nil) {
		return false
	}
	if t.Elem != nil && !t.Elem.Equal(*other.Elem) {
		return false
	}
	if len(t.Alts) != len(other.Alts) {
		return false
	}
	for i := range t.Alts {
		if !t.Alts[i].Equal(other.Alts[i]) {
			return false
		}
	}
	if len(t.Values) != len(other.Values) {
		return false
	}
	for i := range t.Values {
		if t.Values[i] != other.Values[i] {
			return false
		}
	}
	if len(t.Fields) != len(other.Fields) {
		return false
	}
	for i := range t.Fields {
		a, b := t.Fields[i], other.Fields[i]
		if a.Name != b.Name || a.Required != b.Required || !a.Type.Equal(b.Type) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether the type is Int or Float.
func (t Type) IsNumeric() bool {
	return t.Kind == Int || t.Kind == Float
}

// IsStringLike reports whether values of the type are backed by a string
// (plain strings, secrets, paths and file references).
func (t Type) IsStringLike() bool {
	switch t.Kind {
	case Str, Secret, Path, File, Image:
		return true
	}
	return false
}

// Unwrap peels Optional, List, Dict and Set wrappers and returns the
// innermost element type. Scalars, Models, Unions and Literals return
// themselves.
func (t Type) Unwrap() Type {
	switch t.Kind {
	case Optional, List, Dict, Set, Iterator, ConcatIterator:
		return t.Elem.Unwrap()
	}
	return t
}
