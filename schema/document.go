package schema

import (
	"github.com/inferkit/sdk/defaults"
	"github.com/inferkit/sdk/semtype"
)

// JSON is one node of the machine-readable interface description rendered
// from a Schema. It mirrors the common JSON Schema vocabulary; serializing
// it to text is the host's concern, the SDK only builds the structure.
type JSON struct {
	Type                 string          `json:"type,omitempty"`
	Description          string          `json:"description,omitempty"`
	Properties           map[string]JSON `json:"properties,omitempty"`
	Required             []string        `json:"required,omitempty"`
	AdditionalProperties *JSON           `json:"additionalProperties,omitempty"`
	Items                *JSON           `json:"items,omitempty"`
	Enum                 []any           `json:"enum,omitempty"`
	OneOf                []JSON          `json:"oneOf,omitempty"`
	Default              any             `json:"default,omitempty"`
	Minimum              *float64        `json:"minimum,omitempty"`
	Maximum              *float64        `json:"maximum,omitempty"`
	MinLength            *int            `json:"minLength,omitempty"`
	MaxLength            *int            `json:"maxLength,omitempty"`
	Format               string          `json:"format,omitempty"`
	Nullable             bool            `json:"nullable,omitempty"`
	Deprecated           bool            `json:"deprecated,omitempty"`

	// Order preserves input declaration order for positional compatibility.
	Order *int `json:"x-order,omitempty"`
}

// Document renders the input side of the schema as an object node, one
// property per declared input, declaration order recorded in x-order.
func (s *Schema) Document() JSON {
	props := make(map[string]JSON, len(s.inputs))
	var required []string

	for i, in := range s.inputs {
		node := TypeJSON(in.Type)
		node.Description = in.Constraints.Description
		node.Deprecated = in.Constraints.Deprecated
		node.Minimum = in.Constraints.GE
		node.Maximum = in.Constraints.LE
		node.MinLength = in.Constraints.MinLength
		node.MaxLength = in.Constraints.MaxLength
		if len(in.Constraints.Choices) > 0 {
			node.Enum = append([]any(nil), in.Constraints.Choices...)
		}
		if in.Default != nil {
			if v, ok := defaults.Value(in.Default); ok {
				node.Default = v
			}
		}
		order := i
		node.Order = &order

		props[in.Name] = node
		if in.Required {
			required = append(required, in.Name)
		}
	}

	doc := JSON{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
	if s.passthrough {
		anyNode := JSON{}
		doc.AdditionalProperties = &anyNode
	}
	return doc
}

// OutputDocument renders the output type. ok is false for a void callable.
func (s *Schema) OutputDocument() (JSON, bool) {
	if s.output == nil {
		return JSON{}, false
	}
	return TypeJSON(*s.output), true
}

// TypeJSON maps a semantic type onto its JSON Schema node.
func TypeJSON(t semtype.Type) JSON {
	switch t.Kind {
	case semtype.Bool:
		return JSON{Type: "boolean"}
	case semtype.Int:
		return JSON{Type: "integer"}
	case semtype.Float:
		return JSON{Type: "number"}
	case semtype.Str:
		return JSON{Type: "string"}
	case semtype.Secret:
		return JSON{Type: "string", Format: "password"}
	case semtype.Path, semtype.File, semtype.Image:
		return JSON{Type: "string", Format: "uri"}
	case semtype.Model:
		props := make(map[string]JSON, len(t.Fields))
		var required []string
		for _, f := range t.Fields {
			node := TypeJSON(f.Type)
			node.Description = f.Description
			props[f.Name] = node
			if f.Required {
				required = append(required, f.Name)
			}
		}
		return JSON{Type: "object", Properties: props, Required: required}
	case semtype.List, semtype.Set, semtype.Iterator, semtype.ConcatIterator:
		items := TypeJSON(*t.Elem)
		return JSON{Type: "array", Items: &items}
	case semtype.Dict:
		values := TypeJSON(*t.Elem)
		return JSON{Type: "object", AdditionalProperties: &values}
	case semtype.Optional:
		node := TypeJSON(*t.Elem)
		node.Nullable = true
		return node
	case semtype.Union:
		alts := make([]JSON, len(t.Alts))
		for i, a := range t.Alts {
			alts[i] = TypeJSON(a)
		}
		return JSON{OneOf: alts}
	case semtype.Literal:
		return JSON{Enum: append([]any(nil), t.Values...)}
	default:
		return JSON{}
	}
}
