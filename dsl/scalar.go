package dsl

import (
	"encoding/json"
	"math/big"
	"reflect"
	"time"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/codec"
	js "github.com/reoring/goshape/jsonschema"
)

// BooleanSchema validates bool values.
type BooleanSchema struct {
	base
}

// Boolean returns a schema accepting true and false.
func Boolean() *BooleanSchema { return &BooleanSchema{} }

func (s *BooleanSchema) Kind() goshape.Kind { return goshape.KindBoolean }

func (s *BooleanSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		b, ok := v.(bool)
		if !ok {
			s.mismatch(c, "boolean", v)
			return nil, false
		}
		return b, true
	})
}

func (s *BooleanSchema) JSONSchema() (*js.Schema, error) {
	return s.project(&js.Schema{Type: "boolean"}), nil
}

// BigIntSchema validates arbitrary precision integers. It accepts *big.Int,
// Go integer types and integral json.Number values; the output is a fresh
// *big.Int.
type BigIntSchema struct {
	base
	checks []check[*big.Int]
}

// BigInt returns a schema accepting integers of any size.
func BigInt() *BigIntSchema { return &BigIntSchema{} }

func (s *BigIntSchema) Kind() goshape.Kind { return goshape.KindBigInt }

func (s *BigIntSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		n, ok := toBigInt(v)
		if !ok {
			s.mismatch(c, "bigint", v)
			return nil, false
		}
		if !runChecks(c, s.checks, n) {
			return nil, false
		}
		return n, true
	})
}

func toBigInt(v any) (*big.Int, bool) {
	switch t := v.(type) {
	case *big.Int:
		if t == nil {
			return nil, false
		}
		return new(big.Int).Set(t), true
	case big.Int:
		return new(big.Int).Set(&t), true
	case json.Number:
		n, ok := new(big.Int).SetString(t.String(), 10)
		return n, ok
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), true
	}
	return nil, false
}

func (s *BigIntSchema) bound(code string, n int64, cmp func(int) bool, params map[string]any, msg []string) *BigIntSchema {
	limit := big.NewInt(n)
	cp := *s
	cp.checks = appendClone(cp.checks, check[*big.Int]{
		code:   code,
		params: params,
		msg:    firstOf(msg),
		ok:     func(v *big.Int) bool { return cmp(v.Cmp(limit)) },
	})
	return &cp
}

// Gt requires v > n.
func (s *BigIntSchema) Gt(n int64, msg ...string) *BigIntSchema {
	return s.bound(goshape.CodeTooSmall, n, func(c int) bool { return c > 0 },
		map[string]any{"minimum": n, "inclusive": false, "subject": "BigInt"}, msg)
}

// Gte requires v >= n.
func (s *BigIntSchema) Gte(n int64, msg ...string) *BigIntSchema {
	return s.bound(goshape.CodeTooSmall, n, func(c int) bool { return c >= 0 },
		map[string]any{"minimum": n, "inclusive": true, "subject": "BigInt"}, msg)
}

// Lt requires v < n.
func (s *BigIntSchema) Lt(n int64, msg ...string) *BigIntSchema {
	return s.bound(goshape.CodeTooLarge, n, func(c int) bool { return c < 0 },
		map[string]any{"maximum": n, "inclusive": false, "subject": "BigInt"}, msg)
}

// Lte requires v <= n.
func (s *BigIntSchema) Lte(n int64, msg ...string) *BigIntSchema {
	return s.bound(goshape.CodeTooLarge, n, func(c int) bool { return c <= 0 },
		map[string]any{"maximum": n, "inclusive": true, "subject": "BigInt"}, msg)
}

func (s *BigIntSchema) JSONSchema() (*js.Schema, error) {
	return s.project(&js.Schema{Type: "integer"}), nil
}

// DateSchema validates time.Time values. With Coerce, RFC 3339 strings are
// accepted too.
type DateSchema struct {
	base
	checks []check[time.Time]
	coerce bool
}

// Date returns a schema accepting time.Time.
func Date() *DateSchema { return &DateSchema{} }

func (s *DateSchema) Kind() goshape.Kind { return goshape.KindDate }

func (s *DateSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		t, ok := v.(time.Time)
		if !ok {
			if p, isPtr := v.(*time.Time); isPtr && p != nil {
				t, ok = *p, true
			}
		}
		if !ok && s.coerce {
			if str, isStr := v.(string); isStr {
				parsed, err := codec.ParseRFC3339(str)
				if err != nil {
					c.Report(goshape.CodeInvalidFormat, map[string]any{"format": "date"}, s.msgs.InvalidType)
					return nil, false
				}
				t, ok = parsed, true
			}
		}
		if !ok {
			s.mismatch(c, "date", v)
			return nil, false
		}
		if !runChecks(c, s.checks, t) {
			return nil, false
		}
		return t, true
	})
}

// Min requires t >= earliest.
func (s *DateSchema) Min(earliest time.Time, msg ...string) *DateSchema {
	cp := *s
	cp.checks = appendClone(cp.checks, check[time.Time]{
		code:   goshape.CodeTooSmall,
		params: map[string]any{"minimum": codec.FormatRFC3339(earliest), "inclusive": true, "subject": "Date"},
		msg:    firstOf(msg),
		ok:     func(t time.Time) bool { return !t.Before(earliest) },
	})
	return &cp
}

// Max requires t <= latest.
func (s *DateSchema) Max(latest time.Time, msg ...string) *DateSchema {
	cp := *s
	cp.checks = appendClone(cp.checks, check[time.Time]{
		code:   goshape.CodeTooLarge,
		params: map[string]any{"maximum": codec.FormatRFC3339(latest), "inclusive": true, "subject": "Date"},
		msg:    firstOf(msg),
		ok:     func(t time.Time) bool { return !t.After(latest) },
	})
	return &cp
}

// Coerce accepts RFC 3339 strings.
func (s *DateSchema) Coerce() *DateSchema {
	cp := *s
	cp.coerce = true
	return &cp
}

func (s *DateSchema) JSONSchema() (*js.Schema, error) {
	return s.project(&js.Schema{Type: "string", Format: "date-time"}), nil
}

// AnySchema accepts every present value, null included.
type AnySchema struct {
	base
}

// Any returns a schema accepting any value. Absent input still requires
// Optional or a default.
func Any() *AnySchema { return &AnySchema{base: base{nullable: true}} }

func (s *AnySchema) Kind() goshape.Kind { return goshape.KindAny }

func (s *AnySchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) { return v, true })
}

func (s *AnySchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{}
	if s.desc != "" {
		out.Description = s.desc
	}
	return out, nil
}
