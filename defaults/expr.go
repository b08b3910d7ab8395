package defaults

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

type expr struct {
	src string
	prg cel.Program
}

// Expr compiles a CEL expression into a Default. The expression is compiled
// once here and evaluated once per materialization, so lists and maps it
// builds are fresh on every call (e.g. "[0, 100]" or "{'lang': 'en'}").
//
// A compile failure is reported here, at definition time; an evaluation
// failure surfaces per-invocation from Materialize.
func Expr(src string) (Default, error) {
	env, err := cel.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("cel environment: %w", err)
	}
	ast, iss := env.Compile(src)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("invalid default expression %q: %w", src, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("invalid default expression %q: %w", src, err)
	}
	return expr{src: src, prg: prg}, nil
}

func (e expr) Materialize() (any, error) {
	out, _, err := e.prg.Eval(cel.NoVars())
	if err != nil {
		return nil, fmt.Errorf("default expression %q: %w", e.src, err)
	}
	return nativeValue(out)
}

// nativeValue converts a CEL result into the raw decoded-value shapes the
// rest of the SDK works with ([]any, map[string]any, scalars).
func nativeValue(v ref.Val) (any, error) {
	switch v.Type() {
	case types.ListType:
		lister, ok := v.(traits.Lister)
		if !ok {
			return nil, fmt.Errorf("unexpected list result %v", v)
		}
		var out []any
		it := lister.Iterator()
		for it.HasNext() == types.True {
			elem, err := nativeValue(it.Next())
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		if out == nil {
			out = []any{}
		}
		return out, nil
	case types.MapType:
		mapper, ok := v.(traits.Mapper)
		if !ok {
			return nil, fmt.Errorf("unexpected map result %v", v)
		}
		out := make(map[string]any)
		it := mapper.Iterator()
		for it.HasNext() == types.True {
			key := it.Next()
			ks, ok := key.Value().(string)
			if !ok {
				return nil, fmt.Errorf("non-string map key %v in default expression result", key.Value())
			}
			val := mapper.Get(key)
			if types.IsError(val) {
				return nil, fmt.Errorf("default expression map access failed for key %q", ks)
			}
			native, err := nativeValue(val)
			if err != nil {
				return nil, err
			}
			out[ks] = native
		}
		return out, nil
	case types.NullType:
		return nil, nil
	default:
		native := v.Value()
		// CEL doubles and ints arrive as float64/int64 already; uints widen.
		if u, ok := native.(uint64); ok {
			return int64(u), nil
		}
		return native, nil
	}
}
