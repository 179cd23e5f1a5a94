package dsl

import (
	"fmt"
	"reflect"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// RecordSchema validates objects used as dictionaries: every key against a
// key schema and every value against a value schema.
type RecordSchema struct {
	base
	key   goshape.Schema
	value goshape.Schema
}

// Record returns a dictionary schema with string keys.
func Record(value goshape.Schema) *RecordSchema { return RecordOf(String(), value) }

// RecordOf returns a dictionary schema whose keys are checked by key. Key
// issues and value issues are both reported at the entry's path.
func RecordOf(key, value goshape.Schema) *RecordSchema {
	return &RecordSchema{key: key, value: value}
}

func (s *RecordSchema) Kind() goshape.Kind { return goshape.KindRecord }

func (s *RecordSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		m, ok := asMap(v)
		if !ok {
			s.mismatch(c, "object", v)
			return nil, false
		}
		out := make(map[string]any, len(m))
		allOK := true
		for _, k := range sortedKeys(m) {
			if goshape.IsUndefined(m[k]) {
				continue
			}
			seg := goshape.Key(k)
			kv, kok := c.Child(seg, s.key, k)
			vv, vok := c.Child(seg, s.value, m[k])
			if !kok || !vok {
				allOK = false
				continue
			}
			ks, isStr := kv.(string)
			if !isStr {
				ks = fmt.Sprint(kv)
			}
			if !goshape.IsUndefined(vv) {
				out[ks] = vv
			}
		}
		if !allOK {
			return nil, false
		}
		return out, true
	})
}

func (s *RecordSchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema(projection{}) }

func (s *RecordSchema) jsonSchema(p projection) (*js.Schema, error) {
	vs, err := p.of(s.value)
	if err != nil {
		return nil, err
	}
	out := &js.Schema{Type: "object", AdditionalProperties: vs}
	if str, plain := s.key.(*StringSchema); !plain || len(str.checks) > 0 {
		ks, err := p.of(s.key)
		if err != nil {
			return nil, err
		}
		out.PropertyNames = ks
	}
	return s.project(out), nil
}

// MapSchema validates Go maps with arbitrary key types. Entries are visited
// ordered by their printed key and the output is a map[any]any.
type MapSchema struct {
	base
	key   goshape.Schema
	value goshape.Schema
}

// Map returns a schema for maps whose keys match key and values match value.
func Map(key, value goshape.Schema) *MapSchema { return &MapSchema{key: key, value: value} }

func (s *MapSchema) Kind() goshape.Kind { return goshape.KindMap }

func (s *MapSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		entries, ok := mapEntries(v)
		if !ok {
			s.mismatch(c, "map", v)
			return nil, false
		}
		out := make(map[any]any, len(entries))
		allOK := true
		for _, e := range entries {
			seg := goshape.Key(e.label)
			kv, kok := c.Child(seg, s.key, e.key)
			vv, vok := c.Child(seg, s.value, e.value)
			if !kok || !vok {
				allOK = false
				continue
			}
			out[literalKeyOrSelf(kv)] = vv
		}
		if !allOK {
			return nil, false
		}
		return out, true
	})
}

// literalKeyOrSelf keeps comparable keys as they are and falls back to the
// literal key for values that cannot be used as map keys.
func literalKeyOrSelf(v any) any {
	if v == nil || reflect.TypeOf(v).Comparable() {
		return v
	}
	return literalKey(v)
}

func (s *MapSchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema(projection{}) }

func (s *MapSchema) jsonSchema(p projection) (*js.Schema, error) {
	if s.key.Kind() != goshape.KindString && s.key.Kind() != goshape.KindEnum {
		return nil, fmt.Errorf("map with %s keys: %w", s.key.Kind(), js.ErrUnsupported)
	}
	vs, err := p.of(s.value)
	if err != nil {
		return nil, err
	}
	return s.project(&js.Schema{Type: "object", AdditionalProperties: vs}), nil
}

// SetSchema validates collections of unique elements given as slices.
// Duplicates collapse to their first occurrence; size checks apply to the
// collapsed set.
type SetSchema struct {
	base
	elem    goshape.Schema
	checks  []check[[]any]
	minSize *int
	maxSize *int
}

// Set returns a schema for sets whose elements match elem.
func Set(elem goshape.Schema) *SetSchema { return &SetSchema{elem: elem} }

func (s *SetSchema) Kind() goshape.Kind { return goshape.KindSet }

func (s *SetSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		in, ok := asSlice(v)
		if !ok {
			s.mismatch(c, "set", v)
			return nil, false
		}
		seen := make(map[any]struct{}, len(in))
		out := make([]any, 0, len(in))
		allOK := true
		for i, e := range in {
			ev, eok := c.Child(goshape.Index(i), s.elem, e)
			if !eok {
				allOK = false
				continue
			}
			k := literalKey(ev)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, ev)
		}
		if !allOK {
			return nil, false
		}
		if !runChecks(c, s.checks, out) {
			return nil, false
		}
		return out, true
	})
}

func (s *SetSchema) addCheck(ck check[[]any], lo, hi *int) *SetSchema {
	cp := *s
	cp.checks = appendClone(cp.checks, ck)
	if lo != nil {
		cp.minSize = lo
	}
	if hi != nil {
		cp.maxSize = hi
	}
	return &cp
}

// Min requires at least n distinct elements.
func (s *SetSchema) Min(n int, msg ...string) *SetSchema {
	return s.addCheck(check[[]any]{
		code:   goshape.CodeTooSmall,
		params: map[string]any{"minimum": n, "inclusive": true, "subject": "Set size"},
		msg:    firstOf(msg),
		ok:     func(v []any) bool { return len(v) >= n },
	}, &n, nil)
}

// Max allows at most n distinct elements.
func (s *SetSchema) Max(n int, msg ...string) *SetSchema {
	return s.addCheck(check[[]any]{
		code:   goshape.CodeTooLarge,
		params: map[string]any{"maximum": n, "inclusive": true, "subject": "Set size"},
		msg:    firstOf(msg),
		ok:     func(v []any) bool { return len(v) <= n },
	}, nil, &n)
}

// Size requires exactly n distinct elements.
func (s *SetSchema) Size(n int, msg ...string) *SetSchema {
	return s.addCheck(check[[]any]{
		code:   goshape.CodeInvalidLength,
		params: map[string]any{"exact": n},
		msg:    firstOf(msg),
		ok:     func(v []any) bool { return len(v) == n },
	}, &n, &n)
}

// NonEmpty is Min(1).
func (s *SetSchema) NonEmpty(msg ...string) *SetSchema { return s.Min(1, msg...) }

func (s *SetSchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema(projection{}) }

func (s *SetSchema) jsonSchema(p projection) (*js.Schema, error) {
	es, err := p.of(s.elem)
	if err != nil {
		return nil, err
	}
	return s.project(&js.Schema{Type: "array", Items: es, UniqueItems: true, MinItems: s.minSize, MaxItems: s.maxSize}), nil
}
