// Package rules provides reusable object refinements. Each helper returns a
// Rule that can be attached with ObjectSchema.RefineWith; issues it reports
// carry paths relative to the refined object.
package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	goshape "github.com/reoring/goshape"
)

// Issue codes reported by the helpers in this package.
const (
	CodeNotUnique      = "not_unique"
	CodeFieldsNotEqual = "fields_not_equal"
)

// Rule is an object refinement. A nil error means the rule holds.
type Rule = func(ctx context.Context, v map[string]any) error

// Op defines simple comparison operators for If(...).Then(...)
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Conditional composes conditional execution of rules.
type Conditional struct {
	path string
	op   Op
	want any
	all  []Conditional // composite AND
	any  []Conditional // composite OR
}

// If builds a conditional that evaluates the value at a JSON Pointer against
// want. A missing value never satisfies the condition.
func If(path string, op Op, want any) Conditional {
	return Conditional{path: normalizePath(path), op: op, want: want}
}

// IfAll builds a conditional that requires all conditions to hold.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny builds a conditional that requires any condition to hold.
func IfAny(conds ...Conditional) Conditional { return Conditional{any: conds} }

// And combines the receiver with additional conditions using logical AND.
func (c Conditional) And(others ...Conditional) Conditional {
	return IfAll(append([]Conditional{c}, others...)...)
}

// Or combines the receiver with additional conditions using logical OR.
func (c Conditional) Or(others ...Conditional) Conditional {
	return IfAny(append([]Conditional{c}, others...)...)
}

// Holds reports whether the condition is satisfied by v.
func (c Conditional) Holds(v map[string]any) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !it.Holds(v) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if it.Holds(v) {
				return true
			}
		}
		return false
	}
	cur, ok := valueAt(v, c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

// Then attaches rules to run when the condition is satisfied.
func (c Conditional) Then(rules ...Rule) Rule {
	all := And(rules...)
	return func(ctx context.Context, v map[string]any) error {
		if !c.Holds(v) {
			return nil
		}
		return all(ctx, v)
	}
}

// Required reports required_field_missing for every listed pointer that has
// no value. Combine it with If to express conditional requirements.
func Required(paths ...string) Rule {
	ps := make([]string, len(paths))
	for i, p := range paths {
		ps[i] = normalizePath(p)
	}
	return func(_ context.Context, v map[string]any) error {
		var out goshape.Issues
		for _, p := range ps {
			if cur, ok := valueAt(v, p); !ok || cur == nil {
				out = append(out, goshape.Issue{Path: pointerPath(p), Code: goshape.CodeRequired})
			}
		}
		return issuesOrNil(out)
	}
}

// FieldsEqual requires the values at both pointers to be equal. The issue is
// reported at the second pointer, the way a "confirm password" field would be.
func FieldsEqual(path, other string, msg ...string) Rule {
	a, b := normalizePath(path), normalizePath(other)
	return func(_ context.Context, v map[string]any) error {
		av, aok := valueAt(v, a)
		bv, bok := valueAt(v, b)
		if aok == bok && (!aok || equal(av, bv)) {
			return nil
		}
		return goshape.Issues{{
			Path:    pointerPath(b),
			Code:    CodeFieldsNotEqual,
			Message: first(msg, fmt.Sprintf("must match %s", strings.TrimPrefix(a, "/"))),
			Params:  map[string]any{"other": a},
		}}
	}
}

// AtLeastOne ensures the collection at collectionPath has at least 1 element.
// Values that are not collections are left to the schema.
func AtLeastOne(collectionPath string, msg ...string) Rule {
	p := normalizePath(collectionPath)
	return func(_ context.Context, v map[string]any) error {
		val, ok := valueAt(v, p)
		if !ok {
			return nil
		}
		rv := reflect.ValueOf(val)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == 0 {
			return goshape.Issues{{
				Path:    pointerPath(p),
				Code:    goshape.CodeTooSmall,
				Message: first(msg, ""),
				Params:  map[string]any{"subject": "array", "minimum": 1, "inclusive": true},
			}}
		}
		return nil
	}
}

// UniqueBy ensures elements in a collection have unique key values.
// collectionPath is a JSON Pointer to a slice field (e.g., "/items").
// keyPath is a relative path inside each element (e.g., "sku" or "/sku").
// Keys are compared by their formatted value, so keep the key a single type.
func UniqueBy(collectionPath, keyPath string, msg ...string) Rule {
	cp := normalizePath(collectionPath)
	kp := normalizePath(keyPath)
	return func(_ context.Context, v map[string]any) error {
		val, ok := valueAt(v, cp)
		if !ok {
			return nil
		}
		items, ok := val.([]any)
		if !ok {
			return nil
		}
		seen := map[string]int{}
		var out goshape.Issues
		for i, elem := range items {
			kv, ok := valueAt(elem, kp)
			if !ok {
				continue
			}
			key := fmt.Sprint(kv)
			j, dup := seen[key]
			if !dup {
				seen[key] = i
				continue
			}
			path := pointerPath(cp).Append(goshape.Index(i))
			out = append(out, goshape.Issue{
				Path:    path.Append(pointerPath(kp)...),
				Code:    CodeNotUnique,
				Message: first(msg, "duplicate value"),
				Params:  map[string]any{"first": j, "dup": i, "key": key},
			})
		}
		return issuesOrNil(out)
	}
}

// And runs every rule and concatenates their issues.
func And(rules ...Rule) Rule {
	return func(ctx context.Context, v map[string]any) error {
		var out goshape.Issues
		for _, r := range rules {
			if r == nil {
				continue
			}
			if err := r(ctx, v); err != nil {
				iss, ok := goshape.AsIssues(err)
				if !ok {
					return err
				}
				out = append(out, iss...)
			}
		}
		return issuesOrNil(out)
	}
}

// Or succeeds if any rule holds. When all fail, the issues of the rule with
// the fewest issues are returned.
func Or(rules ...Rule) Rule {
	return func(ctx context.Context, v map[string]any) error {
		var best error
		bestN := -1
		for _, r := range rules {
			if r == nil {
				continue
			}
			err := r(ctx, v)
			if err == nil {
				return nil
			}
			n := 1
			if iss, ok := goshape.AsIssues(err); ok {
				n = len(iss)
			}
			if bestN < 0 || n < bestN {
				best, bestN = err, n
			}
		}
		return best
	}
}

// ------- helpers -------

func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if p[0] != '/' {
		return "/" + p
	}
	return p
}

func splitPointer(p string) []string {
	if p == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, s := range parts {
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
	}
	return parts
}

func pointerPath(p string) goshape.Path {
	parts := splitPointer(p)
	out := make(goshape.Path, 0, len(parts))
	for _, s := range parts {
		out = append(out, goshape.Key(s))
	}
	return out
}

// valueAt navigates maps and slices by JSON Pointer. Undefined counts as
// missing.
func valueAt(v any, pointer string) (any, bool) {
	cur := v
	for _, seg := range splitPointer(pointer) {
		switch t := cur.(type) {
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(t) {
				return nil, false
			}
			cur = t[idx]
		default:
			return nil, false
		}
	}
	if goshape.IsUndefined(cur) {
		return nil, false
	}
	return cur, true
}

func compare(cur any, op Op, want any) bool {
	switch op {
	case Eq:
		return equal(cur, want)
	case Ne:
		return !equal(cur, want)
	}
	a, aok := toFloat(cur)
	b, bok := toFloat(want)
	if !aok || !bok {
		return false
	}
	switch op {
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	}
	return false
}

// equal treats numbers of different Go types as equal when their values match.
func equal(a, b any) bool {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return x == y
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func first(msg []string, def string) string {
	if len(msg) > 0 && msg[0] != "" {
		return msg[0]
	}
	return def
}

func issuesOrNil(iss goshape.Issues) error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}
