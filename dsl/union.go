package dsl

import (
	"fmt"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// UnionSchema accepts a value when any branch accepts it. Branches are tried
// in declaration order and the first success wins.
type UnionSchema struct {
	base
	branches []goshape.Schema
}

// Union returns a schema accepting values that match any of branches.
func Union(branches ...goshape.Schema) *UnionSchema {
	return &UnionSchema{branches: append([]goshape.Schema(nil), branches...)}
}

func (s *UnionSchema) Kind() goshape.Kind { return goshape.KindUnion }

// Options returns the branch schemas.
func (s *UnionSchema) Options() []goshape.Schema { return append([]goshape.Schema(nil), s.branches...) }

// Check hands absent and null input to the branches unless the union itself
// was marked optional, nullable or given a default. When no branch accepts
// it, the union reports required_field_missing or unexpected_null.
func (s *UnionSchema) Check(c *goshape.Checker, v any) (any, bool) {
	if (goshape.IsUndefined(v) && !s.optional && !s.hasDefault) || (v == nil && !s.nullable) {
		for _, b := range s.branches {
			f := c.Fork()
			out, ok := b.Check(f, v)
			if !ok || f.Len() > 0 {
				continue
			}
			if goshape.IsUndefined(out) {
				return out, true
			}
			return s.refine(c, out)
		}
	}
	return s.run(c, v, s.match(c))
}

func (s *UnionSchema) match(c *goshape.Checker) func(v any) (any, bool) {
	return func(v any) (any, bool) {
		branches := make([]goshape.Issues, 0, len(s.branches))
		for _, b := range s.branches {
			f := c.Fork()
			out, ok := b.Check(f, v)
			if ok && f.Len() == 0 {
				return out, true
			}
			branches = append(branches, f.Issues())
		}
		c.Add(goshape.Issue{
			Code:     goshape.CodeNoUnionBranch,
			Message:  s.msgs.InvalidType,
			Params:   map[string]any{"branches": len(s.branches)},
			Branches: branches,
		})
		return nil, false
	}
}

func (s *UnionSchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema(projection{}) }

func (s *UnionSchema) jsonSchema(p projection) (*js.Schema, error) {
	out := &js.Schema{}
	for _, b := range s.branches {
		bs, err := p.of(b)
		if err != nil {
			return nil, err
		}
		out.AnyOf = append(out.AnyOf, bs)
	}
	return s.project(out), nil
}

// discriminated is implemented by schemas that can serve as a discriminator
// field (Literal, Enum, NativeEnum).
type discriminated interface {
	discriminatorValues() []any
}

// DiscriminatedUnionSchema selects the branch to validate by the value of a
// shared discriminator field. Only the selected branch runs.
type DiscriminatedUnionSchema struct {
	base
	key      string
	branches []*ObjectSchema
	lookup   map[any]int // literal key -> branch index
	options  []any
}

// DiscriminatedUnion builds a union over object branches that each declare
// key as a Literal, Enum or NativeEnum field. Two branches claiming the same
// discriminator value is an error.
func DiscriminatedUnion(key string, branches ...*ObjectSchema) (*DiscriminatedUnionSchema, error) {
	s := &DiscriminatedUnionSchema{key: key, lookup: map[any]int{}}
	for i, b := range branches {
		if b == nil {
			return nil, fmt.Errorf("dsl: discriminated union %q: branch %d is nil", key, i)
		}
		f, ok := b.fields[key]
		if !ok {
			return nil, fmt.Errorf("dsl: discriminated union %q: branch %d has no field %q", key, i, key)
		}
		d, ok := f.(discriminated)
		if !ok {
			return nil, fmt.Errorf("dsl: discriminated union %q: branch %d field must be a literal or enum, got %s", key, i, f.Kind())
		}
		for _, v := range d.discriminatorValues() {
			lk := literalKey(v)
			if prev, dup := s.lookup[lk]; dup {
				return nil, fmt.Errorf("dsl: discriminated union %q: value %s used by branches %d and %d", key, formatLiteral(v), prev, i)
			}
			s.lookup[lk] = i
			s.options = append(s.options, v)
		}
		s.branches = append(s.branches, b)
	}
	return s, nil
}

// MustDiscriminatedUnion is like DiscriminatedUnion but panics on error.
func MustDiscriminatedUnion(key string, branches ...*ObjectSchema) *DiscriminatedUnionSchema {
	s, err := DiscriminatedUnion(key, branches...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *DiscriminatedUnionSchema) Kind() goshape.Kind { return goshape.KindDiscriminatedUnion }

// Discriminator returns the discriminator field name.
func (s *DiscriminatedUnionSchema) Discriminator() string { return s.key }

// Branch returns the branch registered for a discriminator value.
func (s *DiscriminatedUnionSchema) Branch(value any) (*ObjectSchema, bool) {
	i, ok := s.lookup[literalKey(value)]
	if !ok {
		return nil, false
	}
	return s.branches[i], true
}

func (s *DiscriminatedUnionSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		m, ok := asMap(v)
		if !ok {
			s.mismatch(c, "object", v)
			return nil, false
		}
		d, present := m[s.key]
		if !present {
			d = goshape.Undefined
		}
		b, ok := s.Branch(d)
		if !ok {
			c.ReportAt(goshape.Path{goshape.Key(s.key)}, goshape.CodeUnrecognizedDiscriminator, map[string]any{
				"options":  joinOptions(s.options),
				"received": formatLiteral(d),
			}, "")
			return nil, false
		}
		return b.Check(c, m)
	})
}

func (s *DiscriminatedUnionSchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema(projection{}) }

func (s *DiscriminatedUnionSchema) jsonSchema(p projection) (*js.Schema, error) {
	out := &js.Schema{}
	for _, b := range s.branches {
		bs, err := p.of(b)
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, bs)
	}
	return s.project(out), nil
}
