// Package sdk derives formal input/output schemas from predictor
// signatures and validates invocation values against them.
//
// Third-party authors expose a function (a predictor or trainer) with
// ordinary-looking parameters and a return annotation. The SDK turns a
// structured description of that signature into: a canonical Schema
// describing accepted argument types, constraints and defaults; a
// definition-time verdict that the signature is well-formed; and run-time
// coercion of raw (JSON-decoded) values into typed call arguments and
// outputs. The SDK never executes user code, serves HTTP or manages
// processes; it operates purely on in-process values at the boundary
// between raw data and typed calls.
//
// # Core Concepts
//
//   - Description: the language-neutral view of a callable's signature,
//     supplied by a host adapter (signature package; the component package
//     loads one from predictor.yaml)
//   - Schema: the immutable result of inspection, holding ordered input fields,
//     constraints, defaults and the output type (schema package)
//   - Binding: coercion and validation of one invocation's raw inputs and
//     output against the Schema (bind package)
//
// # Error Families
//
// Two disjoint error families are never conflated (sdkerr package):
// DefinitionError rejects a malformed signature at load time and is fatal
// to that one callable; ValidationError rejects one invocation's values at
// call time and never affects the shared Schema or concurrent calls.
//
// # Getting Started
//
// Load a predictor description and bind an invocation:
//
//	desc, err := component.Load("predictor.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	p, err := sdk.Load(*desc)
//	if err != nil {
//		log.Fatal(err) // *sdkerr.DefinitionError
//	}
//	args, err := p.Bind(map[string]any{"prompt": "hello", "steps": 20})
//	if err != nil {
//		// *sdkerr.ValidationError: surface as a 4xx-equivalent failure
//	}
//	out, err := p.Check(rawResult)
//
// Inspection runs once per callable; Bind and Check are pure functions of
// the Schema and are safe to call concurrently without locking.
package sdk
