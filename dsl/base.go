package dsl

import (
	"context"
	"errors"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// Messages overrides the presence and kind messages of a schema. Empty fields
// fall back to the i18n dictionary.
type Messages struct {
	Required    string // absent input
	Null        string // null input on a non-nullable schema
	InvalidType string // kind mismatch
}

// refinement runs after a node passed its structural and constraint checks.
// A nil error means the value is accepted.
type refinement func(ctx context.Context, v any) error

// refineFailure is the error produced by predicate refinements. An empty
// message is resolved through i18n.
type refineFailure string

func (f refineFailure) Error() string { return string(f) }

// base holds the modifiers every schema type shares. Schema values are copied
// before any modifier is applied, so a base is never mutated once published.
type base struct {
	optional   bool
	nullable   bool
	hasDefault bool
	def        any
	defFn      func() any
	refines    []refinement
	msgs       Messages
	desc       string
}

func (b *base) core() *base { return b }

// node is implemented by every schema type in this package.
type node interface {
	goshape.Schema
	core() *base
	update(fn func(*base)) goshape.Schema
}

// modify copies s, applies fn to the copy's base and returns the copy.
func modify[S any, P interface {
	*S
	core() *base
}](s P, fn func(*base)) P {
	cp := new(S)
	*cp = *s
	fn(P(cp).core())
	return cp
}

func optional(b *base) { b.optional = true }
func nullable(b *base) { b.nullable = true }
func nullish(b *base)  { b.optional, b.nullable = true, true }
func required(b *base) { b.optional = false }

func withDefault(v any) func(*base) {
	v = cloneValue(v)
	return func(b *base) { b.hasDefault, b.def, b.defFn = true, v, nil }
}

func withDefaultFunc(fn func() any) func(*base) {
	return func(b *base) { b.hasDefault, b.def, b.defFn = true, nil, fn }
}

func withRefinement(r refinement) func(*base) {
	return func(b *base) { b.refines = appendClone(b.refines, r) }
}

func withMessages(m Messages) func(*base) { return func(b *base) { b.msgs = m } }
func withDescription(d string) func(*base) {
	return func(b *base) { b.desc = d }
}

// predicate adapts a typed boolean check into a refinement.
func predicate[T any](pred func(T) bool, msg []string) refinement {
	m := firstOf(msg)
	return func(_ context.Context, v any) error {
		t, _ := v.(T)
		if pred(t) {
			return nil
		}
		return refineFailure(m)
	}
}

// contextual adapts a typed error-returning check into a refinement.
func contextual[T any](fn func(context.Context, T) error) refinement {
	return func(ctx context.Context, v any) error {
		t, _ := v.(T)
		return fn(ctx, t)
	}
}

func (b *base) defaultValue() any {
	if b.defFn != nil {
		return b.defFn()
	}
	return cloneValue(b.def)
}

// run applies presence, null handling, the type-specific body and the
// refinements, in that order.
func (b *base) run(c *goshape.Checker, v any, body func(v any) (any, bool)) (any, bool) {
	if goshape.IsUndefined(v) {
		switch {
		case b.hasDefault:
			v = b.defaultValue()
		case b.optional:
			return goshape.Undefined, true
		default:
			c.Report(goshape.CodeRequired, nil, b.msgs.Required)
			return nil, false
		}
	}
	if v == nil {
		if !b.nullable {
			c.Report(goshape.CodeUnexpectedNull, nil, b.msgs.Null)
			return nil, false
		}
		if !b.hasDefault {
			return nil, true
		}
		if v = b.defaultValue(); v == nil {
			return nil, true
		}
	}
	out, ok := body(v)
	if !ok {
		return nil, false
	}
	return b.refine(c, out)
}

func (b *base) refine(c *goshape.Checker, out any) (any, bool) {
	ok := true
	for _, r := range b.refines {
		if err := r(c.Context(), out); err != nil {
			ok = reportRefinement(c, err) && ok
		}
	}
	if !ok {
		return nil, false
	}
	return out, true
}

// reportRefinement records err and reports whether the value still passes
// (an empty Issues list counts as a pass).
func reportRefinement(c *goshape.Checker, err error) bool {
	var rf refineFailure
	if errors.As(err, &rf) {
		c.Report(goshape.CodeCustom, nil, string(rf))
		return false
	}
	var iss goshape.Issues
	if errors.As(err, &iss) {
		if len(iss) == 0 {
			return true
		}
		for i := range iss {
			if iss[i].Code == "" {
				iss[i].Code = goshape.CodeCustom
			}
		}
		c.Add(iss...)
		return false
	}
	c.Report(goshape.CodeCustom, nil, err.Error())
	return false
}

func (b *base) mismatch(c *goshape.Checker, expected string, v any) {
	c.Report(goshape.CodeTypeMismatch, map[string]any{"expected": expected, "received": typeName(v)}, b.msgs.InvalidType)
}

// project applies the shared modifiers to a JSON Schema projection.
func (b *base) project(s *js.Schema) *js.Schema {
	if b.desc != "" {
		s.Description = b.desc
	}
	if b.hasDefault && b.defFn == nil {
		s.Default = b.def
	}
	if b.nullable {
		return js.Nullable(s)
	}
	return s
}

// check is one ordered constraint of a schema. Only the first failing check
// of a node is reported.
type check[T any] struct {
	code   string
	params map[string]any
	msg    string
	ok     func(T) bool
}

func runChecks[T any](c *goshape.Checker, checks []check[T], v T) bool {
	for _, ck := range checks {
		if !ck.ok(v) {
			c.Report(ck.code, ck.params, ck.msg)
			return false
		}
	}
	return true
}

func appendClone[T any](s []T, v ...T) []T {
	out := make([]T, 0, len(s)+len(v))
	out = append(out, s...)
	return append(out, v...)
}

func firstOf(msg []string) string {
	if len(msg) > 0 {
		return msg[0]
	}
	return ""
}

// isOptional reports whether s accepts an absent value without a default.
func isOptional(s goshape.Schema) bool {
	n, ok := s.(node)
	if !ok {
		return false
	}
	if b := n.core(); b.optional || b.hasDefault {
		return true
	}
	if u, ok := s.(*UnionSchema); ok {
		for _, br := range u.branches {
			if isOptional(br) {
				return true
			}
		}
	}
	return false
}

// Optional returns s marked optional. Schemas from other packages are wrapped.
func Optional(s goshape.Schema) goshape.Schema {
	if n, ok := s.(node); ok {
		return n.update(optional)
	}
	return &wrapped{base: base{optional: true}, inner: s}
}

// Nullable returns s marked nullable. Schemas from other packages are wrapped.
func Nullable(s goshape.Schema) goshape.Schema {
	if n, ok := s.(node); ok {
		return n.update(nullable)
	}
	return &wrapped{base: base{nullable: true}, inner: s}
}

// WithDefault returns s with a default value. Schemas from other packages are
// wrapped.
func WithDefault(s goshape.Schema, v any) goshape.Schema { return apply(s, withDefault(v)) }

// Describe returns s with a description.
func Describe(s goshape.Schema, text string) goshape.Schema {
	return apply(s, withDescription(text))
}

func apply(s goshape.Schema, fn func(*base)) goshape.Schema {
	if n, ok := s.(node); ok {
		return n.update(fn)
	}
	w := &wrapped{inner: s}
	fn(&w.base)
	return w
}

// wrapped attaches modifiers to a Schema implemented outside this package.
type wrapped struct {
	base
	inner goshape.Schema
}

func (w *wrapped) Kind() goshape.Kind { return w.inner.Kind() }

func (w *wrapped) Check(c *goshape.Checker, v any) (any, bool) {
	return w.run(c, v, func(v any) (any, bool) { return w.inner.Check(c, v) })
}

func (w *wrapped) JSONSchema() (*js.Schema, error) { return w.jsonSchema(projection{}) }

func (w *wrapped) jsonSchema(p projection) (*js.Schema, error) {
	s, err := p.of(w.inner)
	if err != nil {
		return nil, err
	}
	cp := *s
	return w.project(&cp), nil
}

func (w *wrapped) update(fn func(*base)) goshape.Schema { return modify(w, fn) }
