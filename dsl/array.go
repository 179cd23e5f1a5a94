package dsl

import (
	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// ArraySchema validates slices element by element. Length checks run after
// the elements were visited, so element issues and length issues are both
// reported.
type ArraySchema struct {
	base
	elem     goshape.Schema
	checks   []check[[]any]
	minItems *int
	maxItems *int
}

// Array returns a schema for slices whose elements match elem.
func Array(elem goshape.Schema) *ArraySchema { return &ArraySchema{elem: elem} }

func (s *ArraySchema) Kind() goshape.Kind { return goshape.KindArray }

// Element returns the element schema.
func (s *ArraySchema) Element() goshape.Schema { return s.elem }

func (s *ArraySchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		in, ok := asSlice(v)
		if !ok {
			s.mismatch(c, "array", v)
			return nil, false
		}
		out := make([]any, len(in))
		allOK := true
		for i, e := range in {
			ev, eok := c.Child(goshape.Index(i), s.elem, e)
			if !eok {
				allOK = false
				continue
			}
			out[i] = ev
		}
		if !runChecks(c, s.checks, in) {
			allOK = false
		}
		if !allOK {
			return nil, false
		}
		return out, true
	})
}

func (s *ArraySchema) addCheck(ck check[[]any], lo, hi *int) *ArraySchema {
	cp := *s
	cp.checks = appendClone(cp.checks, ck)
	if lo != nil {
		cp.minItems = lo
	}
	if hi != nil {
		cp.maxItems = hi
	}
	return &cp
}

// Min requires at least n elements.
func (s *ArraySchema) Min(n int, msg ...string) *ArraySchema {
	return s.addCheck(check[[]any]{
		code:   goshape.CodeTooSmall,
		params: map[string]any{"minimum": n, "inclusive": true, "subject": "Array length"},
		msg:    firstOf(msg),
		ok:     func(v []any) bool { return len(v) >= n },
	}, &n, nil)
}

// Max allows at most n elements.
func (s *ArraySchema) Max(n int, msg ...string) *ArraySchema {
	return s.addCheck(check[[]any]{
		code:   goshape.CodeTooLarge,
		params: map[string]any{"maximum": n, "inclusive": true, "subject": "Array length"},
		msg:    firstOf(msg),
		ok:     func(v []any) bool { return len(v) <= n },
	}, nil, &n)
}

// Length requires exactly n elements.
func (s *ArraySchema) Length(n int, msg ...string) *ArraySchema {
	return s.addCheck(check[[]any]{
		code:   goshape.CodeInvalidLength,
		params: map[string]any{"exact": n},
		msg:    firstOf(msg),
		ok:     func(v []any) bool { return len(v) == n },
	}, &n, &n)
}

// NonEmpty is Min(1).
func (s *ArraySchema) NonEmpty(msg ...string) *ArraySchema { return s.Min(1, msg...) }

func (s *ArraySchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema(projection{}) }

func (s *ArraySchema) jsonSchema(p projection) (*js.Schema, error) {
	es, err := p.of(s.elem)
	if err != nil {
		return nil, err
	}
	return s.project(&js.Schema{Type: "array", Items: es, MinItems: s.minItems, MaxItems: s.maxItems}), nil
}

// TupleSchema validates fixed-position slices, optionally followed by any
// number of elements matching a rest schema.
type TupleSchema struct {
	base
	items []goshape.Schema
	rest  goshape.Schema
}

// Tuple returns a schema for slices whose positions match items.
func Tuple(items ...goshape.Schema) *TupleSchema {
	return &TupleSchema{items: append([]goshape.Schema(nil), items...)}
}

func (s *TupleSchema) Kind() goshape.Kind { return goshape.KindTuple }

// Rest validates every element past the fixed items against r.
func (s *TupleSchema) Rest(r goshape.Schema) *TupleSchema {
	cp := *s
	cp.rest = r
	return &cp
}

func (s *TupleSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		in, ok := asSlice(v)
		if !ok {
			s.mismatch(c, "array", v)
			return nil, false
		}
		n := len(s.items)
		switch {
		case s.rest == nil && len(in) != n:
			c.Report(goshape.CodeInvalidLength, map[string]any{"exact": n, "received": len(in)}, "")
			return nil, false
		case s.rest != nil && len(in) < n:
			c.Report(goshape.CodeInvalidLength, map[string]any{"minimum": n, "received": len(in)}, "")
			return nil, false
		}
		out := make([]any, len(in))
		allOK := true
		for i, e := range in {
			item := s.rest
			if i < n {
				item = s.items[i]
			}
			ev, eok := c.Child(goshape.Index(i), item, e)
			if !eok {
				allOK = false
				continue
			}
			out[i] = ev
		}
		if !allOK {
			return nil, false
		}
		return out, true
	})
}

func (s *TupleSchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema(projection{}) }

func (s *TupleSchema) jsonSchema(p projection) (*js.Schema, error) {
	out := &js.Schema{Type: "array", MinItems: js.Int(len(s.items))}
	for _, it := range s.items {
		is, err := p.of(it)
		if err != nil {
			return nil, err
		}
		out.PrefixItems = append(out.PrefixItems, is)
	}
	if s.rest != nil {
		rs, err := p.of(s.rest)
		if err != nil {
			return nil, err
		}
		out.Items = rs
	} else {
		out.Items = false
		out.MaxItems = js.Int(len(s.items))
	}
	return s.project(out), nil
}
