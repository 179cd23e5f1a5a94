package dsl

import (
	"sort"
	"strings"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// LiteralSchema accepts exactly one value. Numbers compare by value, so 1,
// 1.0 and json.Number("1") all match Literal(1).
type LiteralSchema struct {
	base
	value any
	key   any
}

// Literal returns a schema accepting only v. Literal(nil) accepts null.
func Literal(v any) *LiteralSchema {
	s := &LiteralSchema{value: v, key: literalKey(v)}
	s.nullable = v == nil
	return s
}

func (s *LiteralSchema) Kind() goshape.Kind { return goshape.KindLiteral }

// Value returns the accepted value.
func (s *LiteralSchema) Value() any { return s.value }

func (s *LiteralSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		if literalKey(v) != s.key {
			received := typeName(v)
			if received == typeName(s.value) {
				received = formatLiteral(v)
			}
			c.Report(goshape.CodeTypeMismatch, map[string]any{"expected": formatLiteral(s.value), "received": received}, s.msgs.InvalidType)
			return nil, false
		}
		return s.value, true
	})
}

func (s *LiteralSchema) discriminatorValues() []any { return []any{s.value} }

func (s *LiteralSchema) JSONSchema() (*js.Schema, error) {
	if s.value == nil {
		b := s.base
		b.nullable = false
		return b.project(&js.Schema{Type: "null"}), nil
	}
	out := &js.Schema{Const: s.value}
	if t := jsonType(s.value); t != "" {
		out.Type = t
	}
	return s.project(out), nil
}

func jsonType(v any) string {
	switch typeName(v) {
	case "string":
		return "string"
	case "number":
		return "number"
	case "boolean":
		return "boolean"
	}
	return ""
}

// EnumSchema accepts one of a fixed set of strings.
type EnumSchema struct {
	base
	values []string
	index  map[string]struct{}
}

// Enum returns a schema accepting any of values.
func Enum(values ...string) *EnumSchema {
	idx := make(map[string]struct{}, len(values))
	uniq := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := idx[v]; dup {
			continue
		}
		idx[v] = struct{}{}
		uniq = append(uniq, v)
	}
	return &EnumSchema{values: uniq, index: idx}
}

func (s *EnumSchema) Kind() goshape.Kind { return goshape.KindEnum }

// Options returns the accepted values in declaration order.
func (s *EnumSchema) Options() []string { return append([]string(nil), s.values...) }

// Extract returns a new enum restricted to values.
func (s *EnumSchema) Extract(values ...string) *EnumSchema {
	keep := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := s.index[v]; ok {
			keep = append(keep, v)
		}
	}
	return s.derive(keep)
}

// Exclude returns a new enum without values.
func (s *EnumSchema) Exclude(values ...string) *EnumSchema {
	drop := make(map[string]struct{}, len(values))
	for _, v := range values {
		drop[v] = struct{}{}
	}
	keep := make([]string, 0, len(s.values))
	for _, v := range s.values {
		if _, ok := drop[v]; !ok {
			keep = append(keep, v)
		}
	}
	return s.derive(keep)
}

func (s *EnumSchema) derive(values []string) *EnumSchema {
	n := Enum(values...)
	n.base = s.base
	return n
}

func (s *EnumSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		str, ok := v.(string)
		if ok {
			if _, member := s.index[str]; member {
				return str, true
			}
		}
		received := typeName(v)
		if ok {
			received = formatLiteral(str)
		}
		opts := make([]any, len(s.values))
		for i, o := range s.values {
			opts[i] = o
		}
		c.Report(goshape.CodeTypeMismatch, map[string]any{
			"expected": joinOptions(opts),
			"received": received,
			"options":  opts,
		}, s.msgs.InvalidType)
		return nil, false
	})
}

func (s *EnumSchema) discriminatorValues() []any {
	out := make([]any, len(s.values))
	for i, v := range s.values {
		out[i] = v
	}
	return out
}

func (s *EnumSchema) JSONSchema() (*js.Schema, error) {
	return s.project(&js.Schema{Type: "string", Enum: s.discriminatorValues()}), nil
}

func joinOptions(opts []any) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = formatLiteral(o)
	}
	return strings.Join(parts, " | ")
}

// NativeEnumSchema accepts the values of a Go-side enumeration given as a
// name to value map.
type NativeEnumSchema struct {
	base
	names  []string
	values map[any]any // literal key -> declared value
	decl   map[string]any
}

// NativeEnum returns a schema accepting the values of members.
func NativeEnum(members map[string]any) *NativeEnumSchema {
	s := &NativeEnumSchema{values: make(map[any]any, len(members)), decl: make(map[string]any, len(members))}
	for name, v := range members {
		s.names = append(s.names, name)
		s.values[literalKey(v)] = v
		s.decl[name] = v
	}
	sort.Strings(s.names)
	return s
}

func (s *NativeEnumSchema) Kind() goshape.Kind { return goshape.KindNativeEnum }

// Options returns the member values ordered by member name.
func (s *NativeEnumSchema) Options() []any {
	out := make([]any, len(s.names))
	for i, n := range s.names {
		out[i] = s.decl[n]
	}
	return out
}

func (s *NativeEnumSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		if decl, ok := s.values[literalKey(v)]; ok {
			return decl, true
		}
		opts := s.Options()
		c.Report(goshape.CodeTypeMismatch, map[string]any{
			"expected": joinOptions(opts),
			"received": formatLiteral(v),
			"options":  opts,
		}, s.msgs.InvalidType)
		return nil, false
	})
}

func (s *NativeEnumSchema) discriminatorValues() []any { return s.Options() }

func (s *NativeEnumSchema) JSONSchema() (*js.Schema, error) {
	return s.project(&js.Schema{Enum: s.Options()}), nil
}
