package dsl

import (
	"sync"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// LazySchema defers building its target until first use, which allows
// recursive schemas.
type LazySchema struct {
	base
	target *lazyTarget
}

type lazyTarget struct {
	once sync.Once
	fn   func() goshape.Schema
	s    goshape.Schema
}

func (t *lazyTarget) get() goshape.Schema {
	t.once.Do(func() { t.s = t.fn() })
	return t.s
}

// Lazy returns a schema that resolves fn once, on first use.
func Lazy(fn func() goshape.Schema) *LazySchema {
	return &LazySchema{target: &lazyTarget{fn: fn}}
}

func (s *LazySchema) Kind() goshape.Kind { return goshape.KindLazy }

// Check hands absent and null input to the target unless the lazy schema
// itself was marked optional, nullable or given a default.
func (s *LazySchema) Check(c *goshape.Checker, v any) (any, bool) {
	if (goshape.IsUndefined(v) && (s.optional || s.hasDefault)) || (v == nil && s.nullable) {
		return s.run(c, v, func(v any) (any, bool) { return s.target.get().Check(c, v) })
	}
	out, ok := s.target.get().Check(c, v)
	if !ok {
		return nil, false
	}
	return s.refine(c, out)
}

func (s *LazySchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema(projection{}) }

// jsonSchema projects the target. A reference back into a lazy schema that is
// still being expanded by the same call is rendered as an unconstrained
// schema.
func (s *LazySchema) jsonSchema(p projection) (*js.Schema, error) {
	t := s.target
	if p[t] {
		return s.project(&js.Schema{Description: "recursive"}), nil
	}
	p[t] = true
	defer delete(p, t)
	inner, err := p.of(t.get())
	if err != nil {
		return nil, err
	}
	cp := *inner
	return s.project(&cp), nil
}

// projection holds the lazy targets being expanded by one JSONSchema call.
// Each call owns its projection, so concurrent calls never see each other.
type projection map[*lazyTarget]bool

// projector is implemented by container schemas so the projection reaches
// nested lazy schemas.
type projector interface {
	jsonSchema(p projection) (*js.Schema, error)
}

func (p projection) of(s goshape.Schema) (*js.Schema, error) {
	if ps, ok := s.(projector); ok {
		return ps.jsonSchema(p)
	}
	return s.JSONSchema()
}
