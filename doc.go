package goshape

// Package goshape provides:
//
// - Immutable, composable schemas that validate untyped input (decoded JSON/YAML, map[string]any, []any, Go scalars)
// - A stable error model via Issues (path, code, message, params)
// - Source-driven parsing (JSON/YAML) with duplicate-key and depth enforcement
// - Typed binding of validated output into Go structs
//
// Design policy:
// - Keep only public contracts in the root package; builders live under dsl/.
// - Place JSON Schema export under jsonschema/, the importer under openapi/, and the CLI under cmd/goshape.
// - Validation failures are data: Parse returns Issues as the error, SafeParse returns a ParseResult.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  s := g.Object(g.Shape{"username": g.String(), "age": g.Number().Gt(0).Lt(100)})
//  v, err := goshape.Parse(ctx, s, input)
//  res := goshape.SafeParse(ctx, s, input)
//  v, err = goshape.ParseFrom(ctx, s, goshape.JSONBytes(data))
//  user, err := goshape.Bind[User](ctx, s, input)
//
