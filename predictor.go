package sdk

import (
	"github.com/inferkit/sdk/bind"
	"github.com/inferkit/sdk/schema"
	"github.com/inferkit/sdk/sdkerr"
	"github.com/inferkit/sdk/signature"
)

// Predictor ties an inspected schema to the binding operations a serving
// layer performs per invocation. The zero value is not usable; construct
// one with Load.
type Predictor struct {
	name   string
	schema *schema.Schema
}

// Load inspects a callable description and returns a Predictor for it.
// A malformed signature returns a *sdkerr.DefinitionError and no
// Predictor; there is no partially valid state.
func Load(d signature.Description) (*Predictor, error) {
	s, err := signature.Inspect(d)
	if err != nil {
		return nil, err
	}
	return &Predictor{name: d.Name, schema: s}, nil
}

// Name returns the predictor's declared name.
func (p *Predictor) Name() string {
	return p.name
}

// Schema returns the immutable inspected schema.
func (p *Predictor) Schema() *schema.Schema {
	return p.schema
}

// Bind validates one invocation's raw inputs and returns typed call
// arguments, filling omitted optional inputs from their defaults.
func (p *Predictor) Bind(raw map[string]any) (map[string]any, error) {
	return bind.Bind(p.schema, raw)
}

// Check validates the raw output of one invocation against the output
// type. Calling Check on a void callable (a trainer with no return value)
// is a caller bug, reported as a type mismatch on "output".
func (p *Predictor) Check(raw any) (any, error) {
	out, ok := p.schema.Output()
	if !ok {
		return nil, sdkerr.TypeMismatch("output", "None", "value")
	}
	return bind.Check(out, raw)
}

// Document renders the machine-readable interface description of the
// inputs; OutputDocument does the same for the output.
func (p *Predictor) Document() schema.JSON {
	return p.schema.Document()
}

// OutputDocument renders the output type's document node. ok is false for
// a void callable.
func (p *Predictor) OutputDocument() (schema.JSON, bool) {
	return p.schema.OutputDocument()
}
