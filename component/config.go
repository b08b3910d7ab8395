// Package component loads predictor.yaml description files.
//
// A predictor.yaml is the host-language adapter's serialized view of a
// callable: the setup method, the predict or train entry point, each
// parameter's type expression, default and constraint metadata, and any
// user model definitions the annotations reference. Loading produces the
// signature.Description consumed by Inspect; the yaml layer itself knows
// nothing about validity; malformed signatures are rejected by
// inspection, not by parsing.
package component

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/inferkit/sdk/sdkerr"
	"github.com/inferkit/sdk/semtype"
	"github.com/inferkit/sdk/signature"
	"github.com/inferkit/sdk/typeexpr"
)

// Config represents a predictor.yaml file.
type Config struct {
	// Name identifies the predictor.
	Name string `yaml:"name"`

	// DeferredAnnotations marks a source module that carried its
	// annotations as deferred strings. Inspection rejects such predictors.
	DeferredAnnotations bool `yaml:"deferred_annotations,omitempty"`

	// Setup describes the optional setup method.
	Setup *MethodConfig `yaml:"setup,omitempty"`

	// Predict and Train describe the entry point; exactly one must be set.
	Predict *MethodConfig `yaml:"predict,omitempty"`
	Train   *MethodConfig `yaml:"train,omitempty"`

	// Models defines the user record types the annotations may reference.
	Models []ModelConfig `yaml:"models,omitempty"`
}

// MethodConfig describes one method of the predictor.
type MethodConfig struct {
	// Receiver is the first parameter's name; defaults to "self".
	Receiver string `yaml:"receiver,omitempty"`

	Params []ParamConfig `yaml:"params,omitempty"`

	// Return is the return type expression; "" and "None" both mean the
	// method produces no value.
	Return string `yaml:"return,omitempty"`
}

// ParamConfig describes one parameter declaration.
type ParamConfig struct {
	Name string `yaml:"name"`

	// Type is the annotation as a type expression, e.g. "Optional[str]".
	// Empty means the parameter is un-annotated.
	Type string `yaml:"type,omitempty"`

	// Default holds a literal default. The node form distinguishes
	// "no default" from "default: null".
	Default yaml.Node `yaml:"default,omitempty"`

	// DefaultExpr is a CEL expression producing a fresh default per call.
	DefaultExpr string `yaml:"default_expr,omitempty"`

	// Variadic is "", "args" or "kwargs".
	Variadic string `yaml:"variadic,omitempty"`

	GE          *float64 `yaml:"ge,omitempty"`
	LE          *float64 `yaml:"le,omitempty"`
	MinLength   *int     `yaml:"min_length,omitempty"`
	MaxLength   *int     `yaml:"max_length,omitempty"`
	Choices     []any    `yaml:"choices,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Deprecated  bool     `yaml:"deprecated,omitempty"`
}

// ModelConfig defines one user record type.
type ModelConfig struct {
	Name   string             `yaml:"name"`
	Fields []ModelFieldConfig `yaml:"fields"`
}

// ModelFieldConfig defines one field of a user record type.
type ModelFieldConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Load reads and parses a predictor.yaml file and converts it into a
// signature description.
func Load(path string) (*signature.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return Parse(data)
}

// Parse parses predictor.yaml content and converts it into a signature
// description.
func Parse(data []byte) (*signature.Description, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse predictor config: %w", err)
	}
	return cfg.Description()
}

// Description converts the parsed config into the structured callable
// description the signature inspector consumes.
func (c *Config) Description() (*signature.Description, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("predictor config missing name")
	}
	if (c.Predict == nil) == (c.Train == nil) {
		return nil, fmt.Errorf("predictor config must define exactly one of predict or train")
	}

	models, err := c.modelIndex()
	if err != nil {
		return nil, err
	}

	d := &signature.Description{
		Name:                c.Name,
		DeferredAnnotations: c.DeferredAnnotations,
	}

	if c.Setup != nil {
		m, err := c.method(c.Setup, models)
		if err != nil {
			return nil, err
		}
		d.Setup = m
	}

	entry := c.Predict
	if entry == nil {
		entry = c.Train
	}
	m, err := c.method(entry, models)
	if err != nil {
		return nil, err
	}
	d.Entry = *m

	return d, nil
}

func (c *Config) method(mc *MethodConfig, models map[string]ModelConfig) (*signature.Method, error) {
	m := &signature.Method{Receiver: mc.Receiver}
	if m.Receiver == "" {
		m.Receiver = "self"
	}

	for _, pc := range mc.Params {
		p := signature.Param{
			Name:        pc.Name,
			GE:          pc.GE,
			LE:          pc.LE,
			MinLength:   pc.MinLength,
			MaxLength:   pc.MaxLength,
			Choices:     pc.Choices,
			Description: pc.Description,
			Deprecated:  pc.Deprecated,
		}

		switch pc.Variadic {
		case "":
		case "args":
			p.Variadic = signature.VariadicArgs
		case "kwargs":
			p.Variadic = signature.VariadicKwargs
		default:
			return nil, fmt.Errorf("unknown variadic form %q for parameter %s", pc.Variadic, pc.Name)
		}

		if pc.Type != "" {
			ann, err := buildAnnotation(pc.Name, pc.Type, models, nil)
			if err != nil {
				return nil, err
			}
			p.Annotation = &ann
		}

		if !pc.Default.IsZero() {
			var v any
			if err := pc.Default.Decode(&v); err != nil {
				return nil, fmt.Errorf("invalid default for parameter %s: %w", pc.Name, err)
			}
			p.HasDefault = true
			p.Default = normalizeYAML(v)
		}
		p.FactoryExpr = pc.DefaultExpr

		m.Params = append(m.Params, p)
	}

	if mc.Return != "" {
		if mc.Return == "None" {
			m.Return = &semtype.Annotation{Name: "None", Raw: "None"}
		} else {
			ann, err := buildAnnotation("output", mc.Return, models, nil)
			if err != nil {
				return nil, err
			}
			m.Return = &ann
		}
	}

	return m, nil
}

func (c *Config) modelIndex() (map[string]ModelConfig, error) {
	models := make(map[string]ModelConfig, len(c.Models))
	for _, m := range c.Models {
		if m.Name == "" {
			return nil, fmt.Errorf("model definition missing name")
		}
		if _, dup := models[m.Name]; dup {
			return nil, fmt.Errorf("duplicate model definition: %s", m.Name)
		}
		models[m.Name] = m
	}
	return models, nil
}

// buildAnnotation parses a type expression and substitutes user model
// references, rejecting recursive model definitions.
func buildAnnotation(fieldName, src string, models map[string]ModelConfig, visiting []string) (semtype.Annotation, error) {
	ann, err := typeexpr.Parse(src)
	if err != nil {
		return semtype.Annotation{}, sdkerr.Definition(fieldName, "invalid type expression for input: %s: %v", fieldName, err)
	}
	return substituteModels(fieldName, ann, models, visiting)
}

func substituteModels(fieldName string, ann semtype.Annotation, models map[string]ModelConfig, visiting []string) (semtype.Annotation, error) {
	if m, ok := models[ann.Name]; ok && len(ann.Args) == 0 {
		for _, seen := range visiting {
			if seen == ann.Name {
				return semtype.Annotation{}, sdkerr.Definition(fieldName, "recursive model definition: %s", ann.Name)
			}
		}
		visiting = append(visiting, ann.Name)
		out := semtype.Annotation{Name: m.Name, Raw: ann.Raw, Fields: []semtype.FieldAnnotation{}}
		for _, f := range m.Fields {
			fa, err := buildAnnotation(f.Name, f.Type, models, visiting)
			if err != nil {
				return semtype.Annotation{}, err
			}
			out.Fields = append(out.Fields, semtype.FieldAnnotation{
				Name:        f.Name,
				Annotation:  fa,
				Required:    f.Required,
				Description: f.Description,
			})
		}
		return out, nil
	}

	for i, arg := range ann.Args {
		sub, err := substituteModels(fieldName, arg, models, visiting)
		if err != nil {
			return semtype.Annotation{}, err
		}
		ann.Args[i] = sub
	}
	return ann, nil
}

// normalizeYAML converts yaml-decoded values into the raw decoded shapes
// the rest of the SDK works with (map[string]any, []any, int64).
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeYAML(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(e)
		}
		return out
	default:
		return v
	}
}
