package semtype

import (
	"reflect"

	"github.com/inferkit/sdk/sdkerr"
)

// Annotation is the raw, untrusted description of one type annotation, as
// supplied by a host-language adapter. The resolver maps it onto the closed
// Type variant or rejects it.
type Annotation struct {
	// Name is the annotation head: "int", "str", "list", "Optional",
	// "Union", "Literal", "Iterator", "ConcatenateIterator", "None", or a
	// user model name.
	Name string

	// Args are the type arguments, e.g. the element type of list[int].
	Args []Annotation

	// Values are the allowed values of a Literal annotation.
	Values []any

	// Fields marks a user model annotation and carries its field
	// descriptions; nil for anything else.
	Fields []FieldAnnotation

	// Stringified marks an annotation that was carried as deferred text
	// instead of a live type. The resolver rejects these; deferred text
	// defeats runtime type introspection.
	Stringified bool

	// Raw preserves the original annotation text for diagnostics.
	Raw string
}

// FieldAnnotation is one field of a user model annotation.
type FieldAnnotation struct {
	Name        string
	Annotation  Annotation
	Required    bool
	Description string
}

// Named returns a plain annotation with the given head.
func Named(name string, args ...Annotation) Annotation {
	return Annotation{Name: name, Args: args}
}

// Hint supplies context the resolver may use when an annotation alone is
// ambiguous: a bare container annotation borrows its element type from a
// literal default value.
type Hint struct {
	Default    any
	HasDefault bool
}

// scalarKinds maps recognized scalar annotation heads to their kinds.
var scalarKinds = map[string]Kind{
	"bool":      Bool,
	"boolean":   Bool,
	"int":       Int,
	"integer":   Int,
	"float":     Float,
	"number":    Float,
	"str":       Str,
	"string":    Str,
	"Secret":    Secret,
	"SecretStr": Secret,
	"Path":      Path,
	"File":      File,
	"Image":     Image,
}

// containerKinds maps recognized container heads to their kinds.
var containerKinds = map[string]Kind{
	"list": List,
	"List": List,
	"dict": Dict,
	"Dict": Dict,
	"set":  Set,
	"Set":  Set,
}

func (a Annotation) display() string {
	if a.Raw != "" {
		return a.Raw
	}
	return a.Name
}

// Resolve maps an input annotation onto the closed Type variant.
// The field name is used in error messages only. Iterator annotations are
// rejected here; they are valid only as return types.
func Resolve(field string, ann Annotation, hint Hint) (Type, error) {
	if ann.Name == "Iterator" || ann.Name == "ConcatenateIterator" {
		return Type{}, sdkerr.Definition(field, "iterator type is only valid as a return type: %s", field)
	}
	return resolve(field, ann, hint)
}

// ResolveReturn maps a return annotation onto the closed Type variant,
// additionally admitting a root-level Iterator or ConcatenateIterator and
// rejecting a root-level Optional.
func ResolveReturn(ann Annotation) (Type, error) {
	const field = "output"
	switch ann.Name {
	case "Optional":
		return Type{}, sdkerr.Definition(field, "output must not be Optional")
	case "Iterator":
		if len(ann.Args) != 1 {
			return Type{}, sdkerr.Definition(field, "iterator type must have a type argument")
		}
		elem, err := resolve(field, ann.Args[0], Hint{})
		if err != nil {
			return Type{}, err
		}
		return IteratorOf(elem), nil
	case "ConcatenateIterator":
		// A bare ConcatenateIterator is implicitly an iterator of str.
		if len(ann.Args) == 0 {
			return ConcatIteratorOf(), nil
		}
		if len(ann.Args) != 1 {
			return Type{}, sdkerr.Definition(field, "iterator type must have a type argument")
		}
		elem, err := resolve(field, ann.Args[0], Hint{})
		if err != nil {
			return Type{}, err
		}
		if elem.Kind != Str {
			return Type{}, sdkerr.Definition(field, "ConcatenateIterator must have str element")
		}
		return ConcatIteratorOf(), nil
	}
	return resolve(field, ann, Hint{})
}

func resolve(field string, ann Annotation, hint Hint) (Type, error) {
	if ann.Stringified {
		return Type{}, sdkerr.Definition(field, "deferred annotations are not supported")
	}

	// User models are recognized by the presence of field descriptions.
	if ann.Fields != nil {
		fields := make([]ModelField, 0, len(ann.Fields))
		for _, f := range ann.Fields {
			ft, err := resolve(f.Name, f.Annotation, Hint{})
			if err != nil {
				return Type{}, err
			}
			fields = append(fields, ModelField{
				Name:        f.Name,
				Type:        ft,
				Required:    f.Required,
				Description: f.Description,
			})
		}
		return ModelOf(ann.Name, fields...), nil
	}

	if k, ok := scalarKinds[ann.Name]; ok {
		return Of(k), nil
	}

	if k, ok := containerKinds[ann.Name]; ok {
		return resolveContainer(field, k, ann, hint)
	}

	switch ann.Name {
	case "Optional":
		if len(ann.Args) != 1 {
			return Type{}, sdkerr.Definition(field, "Optional must have exactly one type argument: %s", field)
		}
		inner, err := resolve(field, ann.Args[0], hint)
		if err != nil {
			return Type{}, err
		}
		return OptionalOf(inner), nil

	case "Union":
		if len(ann.Args) < 2 {
			return Type{}, sdkerr.Definition(field, "Union must have at least two type arguments: %s", field)
		}
		alts := make([]Type, 0, len(ann.Args))
		for _, arg := range ann.Args {
			alt, err := resolve(field, arg, Hint{})
			if err != nil {
				return Type{}, err
			}
			alts = append(alts, alt)
		}
		return UnionOf(alts...), nil

	case "Literal":
		if len(ann.Values) == 0 {
			return Type{}, sdkerr.Definition(field, "Literal must have at least one value: %s", field)
		}
		for _, v := range ann.Values {
			switch v.(type) {
			case string, bool, int, int64, float64:
			default:
				return Type{}, sdkerr.Definition(field, "Literal values must be scalar: %s", field)
			}
		}
		return LiteralOf(ann.Values...), nil

	case "Iterator", "ConcatenateIterator":
		// Nested iterators never resolve; only ResolveReturn admits them,
		// and only at the root.
		return Type{}, sdkerr.Definition(field, "iterator type is only valid as a return type: %s", field)
	}

	return Type{}, sdkerr.Definition(field, "unsupported type: %s: %s", field, ann.display())
}

func resolveContainer(field string, k Kind, ann Annotation, hint Hint) (Type, error) {
	var elemAnn *Annotation

	switch k {
	case Dict:
		// Keys are always strings; accept dict[T] or dict[str, T].
		switch len(ann.Args) {
		case 0:
		case 1:
			elemAnn = &ann.Args[0]
		case 2:
			if kk, ok := scalarKinds[ann.Args[0].Name]; !ok || kk != Str {
				return Type{}, sdkerr.Definition(field, "dict keys must be str: %s", field)
			}
			elemAnn = &ann.Args[1]
		default:
			return Type{}, sdkerr.Definition(field, "dict must have at most two type arguments: %s", field)
		}
	default:
		switch len(ann.Args) {
		case 0:
		case 1:
			elemAnn = &ann.Args[0]
		default:
			return Type{}, sdkerr.Definition(field, "%s must have exactly one type argument: %s", ann.Name, field)
		}
	}

	var elem Type
	if elemAnn != nil {
		resolved, err := resolve(field, *elemAnn, Hint{})
		if err != nil {
			return Type{}, err
		}
		elem = resolved
	} else {
		// Bare container: the element type is inferred from a literal
		// default when every element agrees, otherwise it is ambiguous.
		inferred, ok := inferElem(hint)
		if !ok {
			return Type{}, sdkerr.Definition(field, "ambiguous element type for input: %s", field)
		}
		elem = inferred
	}

	switch k {
	case List:
		return ListOf(elem), nil
	case Dict:
		return DictOf(elem), nil
	default:
		return SetOf(elem), nil
	}
}

// inferElem derives a container element type from a literal default value.
// All elements must share one scalar kind.
func inferElem(hint Hint) (Type, bool) {
	if !hint.HasDefault || hint.Default == nil {
		return Type{}, false
	}

	v := reflect.ValueOf(hint.Default)
	var elems []any
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			elems = append(elems, v.Index(i).Interface())
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			elems = append(elems, iter.Value().Interface())
		}
	default:
		return Type{}, false
	}
	if len(elems) == 0 {
		return Type{}, false
	}

	kind := scalarKindOf(elems[0])
	if kind == Invalid {
		return Type{}, false
	}
	for _, e := range elems[1:] {
		if scalarKindOf(e) != kind {
			return Type{}, false
		}
	}
	return Of(kind), true
}

func scalarKindOf(v any) Kind {
	switch v.(type) {
	case string:
		return Str
	case bool:
		return Bool
	case int, int64:
		return Int
	case float64, float32:
		return Float
	}
	return Invalid
}
