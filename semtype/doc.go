// Package semtype defines the closed set of semantic types a predictor
// signature may use, and resolves raw annotations onto it.
//
// A Type is one node of a finite type tree: a scalar (bool, int, float,
// str, Secret, Path, File, Image), a container (List, Dict, Set), an
// Optional or Union wrapper, a Literal value set, a user Model, or an
// iterator return type. Anything outside this set is rejected at
// definition time rather than surprising the caller at runtime.
//
// Annotations arrive as language-neutral Annotation values produced by a
// host adapter (see the component package for the yaml adapter). Resolve
// handles input annotations; ResolveReturn handles return annotations,
// which additionally admit a root-level Iterator or ConcatenateIterator
// and reject Optional:
//
//	t, err := semtype.Resolve("scale", semtype.Named("int"), semtype.Hint{})
//	if err != nil {
//	    // *sdkerr.DefinitionError naming the field and rule
//	}
//
// Resolution failures are always *sdkerr.DefinitionError values with fixed
// messages, e.g. "iterator type must have a type argument" or
// "ambiguous element type for input: xs" for a bare container whose
// element type cannot be inferred from its default.
package semtype
