package goshape

import (
	"context"

	js "github.com/reoring/goshape/jsonschema"
)

// Schema is an immutable validation node. Implementations live in the dsl
// package; the interface is exported so custom nodes can take part in a tree.
type Schema interface {
	// Kind identifies the node. It never changes after construction.
	Kind() Kind
	// Check validates v (which may be Undefined) at c's current path. It
	// records every issue on c and returns the output value together with
	// whether this node succeeded.
	Check(c *Checker, v any) (any, bool)
	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// ParseResult is the outcome of SafeParse: either Success with Value, or a
// failure carrying Issues.
type ParseResult struct {
	Success bool
	Value   any
	Issues  Issues
}

// Err returns nil on success and the Issues otherwise.
func (r ParseResult) Err() error {
	if r.Success {
		return nil
	}
	return r.Issues
}

// Parse validates v against s. On success it returns the output value
// (defaults applied, unknown keys handled per policy). On failure the error is
// an Issues value holding every issue found.
func Parse(ctx context.Context, s Schema, v any) (any, error) {
	if s == nil {
		return nil, Issues{{Code: CodeParseError, Message: "nil schema"}}
	}
	c := NewChecker(ctx)
	out, ok := s.Check(c, v)
	if iss := c.Issues(); len(iss) > 0 {
		return nil, iss
	}
	if !ok {
		return nil, Issues{{Code: CodeParseError, Message: "validation failed without issues"}}
	}
	return out, nil
}

// SafeParse is like Parse but reports failures as data instead of an error.
func SafeParse(ctx context.Context, s Schema, v any) ParseResult {
	out, err := Parse(ctx, s, v)
	if err != nil {
		iss, _ := AsIssues(err)
		return ParseResult{Issues: iss}
	}
	return ParseResult{Success: true, Value: out}
}

// MustParse is like Parse but panics on failure.
func MustParse(ctx context.Context, s Schema, v any) any {
	out, err := Parse(ctx, s, v)
	if err != nil {
		panic(err)
	}
	return out
}

// Is returns true if v conforms to the schema s.
func Is(ctx context.Context, s Schema, v any) bool {
	_, err := Parse(ctx, s, v)
	return err == nil
}
