// Package vschema provides:
//
// - Declarative schemas built from plain Go values (literals, Object, Array)
// and combinator nodes (Type, Primitive, Any/All/Optional/Nullable, Validator)
// - A recursive validation engine that produces a new, possibly coerced value
// tree or a structured error tree describing every mismatch
// - Trace rendering (Render) and a flat Issues view (Flatten) of that tree
//
// Design policy:
// - Keep the engine, nodes and error model in the root package; put document
// decoding under source/, schema documents under schemadoc/, JSON Schema
// types under jsonschema/ and the CLI under cmd/vschema.
// - Object and array validation visit every field and element and aggregate
// failures; only All() chains and Any() searches stop early.
// - Validate never mutates its input. ValidateInPlace writes results back.
//
// Typical usage:
//
//	user := vschema.Object{
//		"id":    vschema.ID(),
//		"email": vschema.Optional(vschema.Email()),
//		"tags":  vschema.Array{vschema.Primitive(vschema.CategoryString)},
//	}
//	v, err := vschema.Validate(user, input, vschema.ValidateOpt{Name: "user"})
//	if err != nil {
//		fmt.Println(vschema.Render(err))
//	}
package vschema
