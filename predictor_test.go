package sdk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferkit/sdk/sdkerr"
	"github.com/inferkit/sdk/semtype"
	"github.com/inferkit/sdk/signature"
)

func ptrF(v float64) *float64 { return &v }

// incrementDescription describes a callable taking a list of ints and
// returning a list of ints, plus a bounded step count with a default.
func incrementDescription() signature.Description {
	xs := semtype.Annotation{Name: "list", Args: []semtype.Annotation{{Name: "int"}}, Raw: "list[int]"}
	return signature.Description{
		Name: "increment",
		Entry: signature.Method{
			Receiver: "self",
			Params: []signature.Param{
				{Name: "xs", Annotation: &xs},
				{Name: "step", Annotation: &semtype.Annotation{Name: "int", Raw: "int"},
					HasDefault: true, Default: int64(1), GE: ptrF(1), LE: ptrF(10)},
			},
			Return: &semtype.Annotation{Name: "list", Args: []semtype.Annotation{{Name: "int"}}, Raw: "list[int]"},
		},
	}
}

func TestLoad(t *testing.T) {
	p, err := Load(incrementDescription())
	require.NoError(t, err)
	assert.Equal(t, "increment", p.Name())
	assert.Equal(t, 2, p.Schema().Len())
}

func TestLoad_DefinitionError(t *testing.T) {
	d := incrementDescription()
	d.Entry.Params[0].Annotation = nil

	p, err := Load(d)
	assert.Nil(t, p)
	var derr *sdkerr.DefinitionError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "missing type annotation for input: xs", derr.Message)
}

func TestPredictor_BindAndCheck(t *testing.T) {
	p, err := Load(incrementDescription())
	require.NoError(t, err)

	args, err := p.Bind(map[string]any{"xs": []any{float64(0), float64(1), float64(2)}})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(0), int64(1), int64(2)}, args["xs"])
	assert.Equal(t, int64(1), args["step"])

	// The callable runs; its raw result is checked against the output type.
	raw := make([]any, 0, 3)
	for _, v := range args["xs"].([]any) {
		raw = append(raw, v.(int64)+args["step"].(int64))
	}
	out, err := p.Check(raw)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, out)
}

func TestPredictor_BindErrors(t *testing.T) {
	p, err := Load(incrementDescription())
	require.NoError(t, err)

	_, err = p.Bind(map[string]any{})
	assert.True(t, errors.Is(err, &sdkerr.ValidationError{Kind: sdkerr.KindMissingField, Field: "xs"}))

	_, err = p.Bind(map[string]any{"xs": []any{}, "step": 99})
	assert.True(t, errors.Is(err, &sdkerr.ValidationError{Kind: sdkerr.KindRange, Field: "step"}))

	_, err = p.Bind(map[string]any{"xs": []any{}, "junk": 1})
	assert.True(t, errors.Is(err, &sdkerr.ValidationError{Kind: sdkerr.KindUnknownField, Field: "junk"}))
}

func TestPredictor_CheckOnVoidCallable(t *testing.T) {
	d := incrementDescription()
	d.Name = "trainer"
	d.Entry.Return = nil

	p, err := Load(d)
	require.NoError(t, err)

	_, err = p.Check("whatever")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &sdkerr.ValidationError{Kind: sdkerr.KindTypeMismatch, Field: "output"}))
}

func TestPredictor_Documents(t *testing.T) {
	p, err := Load(incrementDescription())
	require.NoError(t, err)

	doc := p.Document()
	assert.Equal(t, "object", doc.Type)
	require.Contains(t, doc.Properties, "xs")
	require.Contains(t, doc.Properties, "step")
	assert.Equal(t, []string{"xs"}, doc.Required)

	out, ok := p.OutputDocument()
	require.True(t, ok)
	assert.Equal(t, "array", out.Type)
}
