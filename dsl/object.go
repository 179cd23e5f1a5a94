package dsl

import (
	"sort"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// Shape declares object fields. Go maps are unordered, so fields given as a
// Shape are laid out in key order; use ObjectSchema.Field to control order.
type Shape map[string]goshape.Schema

func (sh Shape) sortedKeys() []string {
	keys := make([]string, 0, len(sh))
	for k := range sh {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ObjectSchema validates map[string]any values field by field in declaration
// order. Unknown keys are stripped unless Passthrough, Strict or Catchall says
// otherwise.
type ObjectSchema struct {
	base
	keys     []string
	fields   map[string]goshape.Schema
	unknown  goshape.UnknownPolicy
	catchall goshape.Schema
}

// Object returns an object schema with the given fields.
func Object(shapes ...Shape) *ObjectSchema {
	s := &ObjectSchema{fields: map[string]goshape.Schema{}}
	for _, sh := range shapes {
		for _, k := range sh.sortedKeys() {
			s.set(k, sh[k])
		}
	}
	return s
}

// set adds or replaces a field on a schema that has not been published yet.
// A replaced field keeps its position.
func (s *ObjectSchema) set(name string, f goshape.Schema) {
	if _, exists := s.fields[name]; !exists {
		s.keys = append(s.keys, name)
	}
	s.fields[name] = f
}

// clone copies the field table so the copy can be modified.
func (s *ObjectSchema) clone() *ObjectSchema {
	cp := *s
	cp.keys = append([]string(nil), s.keys...)
	cp.fields = make(map[string]goshape.Schema, len(s.fields))
	for k, v := range s.fields {
		cp.fields[k] = v
	}
	return &cp
}

func (s *ObjectSchema) Kind() goshape.Kind { return goshape.KindObject }

// Field returns a new schema with the field appended (or replaced in place).
func (s *ObjectSchema) Field(name string, f goshape.Schema) *ObjectSchema {
	cp := s.clone()
	cp.set(name, f)
	return cp
}

// Shape returns a copy of the field table.
func (s *ObjectSchema) Shape() Shape {
	out := make(Shape, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// Keys returns the field names in declaration order.
func (s *ObjectSchema) Keys() []string { return append([]string(nil), s.keys...) }

// Get returns the schema of a field.
func (s *ObjectSchema) Get(name string) (goshape.Schema, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// UnknownPolicy reports how unknown keys are handled.
func (s *ObjectSchema) UnknownPolicy() goshape.UnknownPolicy { return s.unknown }

// Pick keeps only the named fields.
func (s *ObjectSchema) Pick(keys ...string) *ObjectSchema {
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	return s.filter(func(k string) bool { _, ok := want[k]; return ok })
}

// Omit drops the named fields.
func (s *ObjectSchema) Omit(keys ...string) *ObjectSchema {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	return s.filter(func(k string) bool { _, ok := drop[k]; return !ok })
}

func (s *ObjectSchema) filter(keep func(string) bool) *ObjectSchema {
	cp := *s
	cp.keys = nil
	cp.fields = map[string]goshape.Schema{}
	for _, k := range s.keys {
		if keep(k) {
			cp.set(k, s.fields[k])
		}
	}
	return &cp
}

// Extend adds fields; a field that already exists is replaced in place.
func (s *ObjectSchema) Extend(sh Shape) *ObjectSchema {
	cp := s.clone()
	for _, k := range sh.sortedKeys() {
		cp.set(k, sh[k])
	}
	return cp
}

// Merge adds the fields of other in its declaration order. Fields of other
// win on name collision, and the result takes other's unknown-key policy.
func (s *ObjectSchema) Merge(other *ObjectSchema) *ObjectSchema {
	cp := s.clone()
	for _, k := range other.keys {
		cp.set(k, other.fields[k])
	}
	cp.unknown = other.unknown
	cp.catchall = other.catchall
	return cp
}

// Partial makes the named fields optional, or every field when none are named.
func (s *ObjectSchema) Partial(keys ...string) *ObjectSchema {
	return s.mapFields(keys, func(f goshape.Schema) goshape.Schema { return Optional(f) })
}

// DeepPartial makes every field optional, recursing into nested object
// schemas. Other container kinds are left as they are.
func (s *ObjectSchema) DeepPartial() *ObjectSchema {
	return s.mapFields(nil, func(f goshape.Schema) goshape.Schema {
		if o, ok := f.(*ObjectSchema); ok {
			return o.DeepPartial().Optional()
		}
		return Optional(f)
	})
}

// Required removes the optional flag from the named fields, or from every
// field when none are named.
func (s *ObjectSchema) Required(keys ...string) *ObjectSchema {
	return s.mapFields(keys, func(f goshape.Schema) goshape.Schema {
		if n, ok := f.(node); ok {
			return n.update(required)
		}
		return f
	})
}

func (s *ObjectSchema) mapFields(keys []string, fn func(goshape.Schema) goshape.Schema) *ObjectSchema {
	cp := s.clone()
	if len(keys) == 0 {
		keys = s.keys
	}
	for _, k := range keys {
		if f, ok := cp.fields[k]; ok {
			cp.fields[k] = fn(f)
		}
	}
	return cp
}

func (s *ObjectSchema) policy(p goshape.UnknownPolicy) *ObjectSchema {
	cp := *s
	cp.unknown = p
	cp.catchall = nil
	return &cp
}

// Passthrough keeps unknown keys verbatim.
func (s *ObjectSchema) Passthrough() *ObjectSchema { return s.policy(goshape.UnknownPassthrough) }

// Strict reports every unknown key as unrecognized_key.
func (s *ObjectSchema) Strict() *ObjectSchema { return s.policy(goshape.UnknownStrict) }

// Strip drops unknown keys (the default).
func (s *ObjectSchema) Strip() *ObjectSchema { return s.policy(goshape.UnknownStrip) }

// Catchall validates unknown keys against c and keeps them.
func (s *ObjectSchema) Catchall(c goshape.Schema) *ObjectSchema {
	cp := *s
	cp.catchall = c
	return &cp
}

// KeyOf returns an enum of the field names.
func (s *ObjectSchema) KeyOf() *EnumSchema { return Enum(s.keys...) }

func (s *ObjectSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		m, ok := asMap(v)
		if !ok {
			s.mismatch(c, "object", v)
			return nil, false
		}
		out := make(map[string]any, len(s.keys))
		allOK := true
		for _, k := range s.keys {
			in, present := m[k]
			if !present {
				in = goshape.Undefined
			}
			fv, fok := c.Child(goshape.Key(k), s.fields[k], in)
			if !fok {
				allOK = false
				continue
			}
			if !goshape.IsUndefined(fv) {
				out[k] = fv
			}
		}
		if !s.unknownKeys(c, m, out) {
			allOK = false
		}
		if !allOK {
			return nil, false
		}
		return out, true
	})
}

// unknownKeys applies the unknown-key policy. Keys are visited in sorted order
// so issues are deterministic.
func (s *ObjectSchema) unknownKeys(c *goshape.Checker, in, out map[string]any) bool {
	if s.unknown == goshape.UnknownStrip && s.catchall == nil {
		return true
	}
	ok := true
	for _, k := range sortedKeys(in) {
		if _, known := s.fields[k]; known {
			continue
		}
		v := in[k]
		switch {
		case s.catchall != nil:
			cv, cok := c.Child(goshape.Key(k), s.catchall, v)
			if !cok {
				ok = false
				continue
			}
			if !goshape.IsUndefined(cv) {
				out[k] = cv
			}
		case s.unknown == goshape.UnknownStrict:
			c.Report(goshape.CodeUnrecognizedKey, map[string]any{"key": k}, "")
			ok = false
		case s.unknown == goshape.UnknownPassthrough:
			if !goshape.IsUndefined(v) {
				out[k] = v
			}
		}
	}
	return ok
}

func (s *ObjectSchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema(projection{}) }

func (s *ObjectSchema) jsonSchema(p projection) (*js.Schema, error) {
	out := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(s.keys))}
	for _, k := range s.keys {
		f := s.fields[k]
		fs, err := p.of(f)
		if err != nil {
			return nil, err
		}
		out.Properties[k] = fs
		if !isOptional(f) {
			out.Required = append(out.Required, k)
		}
	}
	switch {
	case s.catchall != nil:
		cs, err := p.of(s.catchall)
		if err != nil {
			return nil, err
		}
		out.AdditionalProperties = cs
	case s.unknown == goshape.UnknownStrict:
		out.AdditionalProperties = false
	}
	return s.project(out), nil
}
