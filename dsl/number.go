package dsl

import (
	"math"
	"strconv"
	"strings"

	goshape "github.com/reoring/goshape"
	js "github.com/reoring/goshape/jsonschema"
)

// NumberSchema validates numbers. Every Go numeric type and json.Number is
// accepted; the output is always float64. NaN is rejected as a type mismatch.
type NumberSchema struct {
	base
	checks []check[float64]
	coerce bool
	isInt  bool
	intMsg string
	proj   js.Schema
}

// Number returns a schema accepting numeric values.
func Number() *NumberSchema { return &NumberSchema{} }

func (s *NumberSchema) Kind() goshape.Kind { return goshape.KindNumber }

func (s *NumberSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		f, ok := toFloat(v)
		if !ok && s.coerce {
			f, ok = coerceNumber(v)
		}
		if !ok || math.IsNaN(f) {
			s.mismatch(c, "number", v)
			return nil, false
		}
		if s.isInt && (f != math.Trunc(f) || math.IsInf(f, 0)) {
			msg := s.intMsg
			if msg == "" {
				msg = s.msgs.InvalidType
			}
			c.Report(goshape.CodeTypeMismatch, map[string]any{"expected": "integer", "received": "float"}, msg)
			return nil, false
		}
		if !runChecks(c, s.checks, f) {
			return nil, false
		}
		return f, true
	})
}

func coerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (s *NumberSchema) with(fn func(*NumberSchema)) *NumberSchema {
	cp := *s
	fn(&cp)
	return &cp
}

func (s *NumberSchema) addCheck(ck check[float64], proj func(*js.Schema)) *NumberSchema {
	return s.with(func(n *NumberSchema) {
		n.checks = appendClone(n.checks, ck)
		if proj != nil {
			proj(&n.proj)
		}
	})
}

func lowerBound(n float64, inclusive bool, msg []string) check[float64] {
	return check[float64]{
		code:   goshape.CodeTooSmall,
		params: map[string]any{"minimum": n, "inclusive": inclusive, "subject": "Number"},
		msg:    firstOf(msg),
		ok: func(v float64) bool {
			if inclusive {
				return v >= n
			}
			return v > n
		},
	}
}

func upperBound(n float64, inclusive bool, msg []string) check[float64] {
	return check[float64]{
		code:   goshape.CodeTooLarge,
		params: map[string]any{"maximum": n, "inclusive": inclusive, "subject": "Number"},
		msg:    firstOf(msg),
		ok: func(v float64) bool {
			if inclusive {
				return v <= n
			}
			return v < n
		},
	}
}

// Gt requires v > n.
func (s *NumberSchema) Gt(n float64, msg ...string) *NumberSchema {
	return s.addCheck(lowerBound(n, false, msg), func(p *js.Schema) { p.ExclusiveMinimum = js.Float(n) })
}

// Gte requires v >= n.
func (s *NumberSchema) Gte(n float64, msg ...string) *NumberSchema {
	return s.addCheck(lowerBound(n, true, msg), func(p *js.Schema) { p.Minimum = js.Float(n) })
}

// Min is an alias of Gte.
func (s *NumberSchema) Min(n float64, msg ...string) *NumberSchema { return s.Gte(n, msg...) }

// Lt requires v < n.
func (s *NumberSchema) Lt(n float64, msg ...string) *NumberSchema {
	return s.addCheck(upperBound(n, false, msg), func(p *js.Schema) { p.ExclusiveMaximum = js.Float(n) })
}

// Lte requires v <= n.
func (s *NumberSchema) Lte(n float64, msg ...string) *NumberSchema {
	return s.addCheck(upperBound(n, true, msg), func(p *js.Schema) { p.Maximum = js.Float(n) })
}

// Max is an alias of Lte.
func (s *NumberSchema) Max(n float64, msg ...string) *NumberSchema { return s.Lte(n, msg...) }

// Positive is Gt(0).
func (s *NumberSchema) Positive(msg ...string) *NumberSchema { return s.Gt(0, msg...) }

// NonNegative is Gte(0).
func (s *NumberSchema) NonNegative(msg ...string) *NumberSchema { return s.Gte(0, msg...) }

// Negative is Lt(0).
func (s *NumberSchema) Negative(msg ...string) *NumberSchema { return s.Lt(0, msg...) }

// NonPositive is Lte(0).
func (s *NumberSchema) NonPositive(msg ...string) *NumberSchema { return s.Lte(0, msg...) }

// Int rejects values with a fractional part.
func (s *NumberSchema) Int(msg ...string) *NumberSchema {
	return s.with(func(n *NumberSchema) {
		n.isInt = true
		if m := firstOf(msg); m != "" {
			n.intMsg = m
		}
	})
}

// MultipleOf requires v to be an integer multiple of step.
func (s *NumberSchema) MultipleOf(step float64, msg ...string) *NumberSchema {
	return s.addCheck(check[float64]{
		code:   goshape.CodeNotMultipleOf,
		params: map[string]any{"multipleOf": step},
		msg:    firstOf(msg),
		ok: func(v float64) bool {
			if step == 0 {
				return false
			}
			q := v / step
			return math.Abs(q-math.Round(q)) < 1e-9
		},
	}, func(p *js.Schema) { p.MultipleOf = js.Float(step) })
}

// Finite rejects ±Inf.
func (s *NumberSchema) Finite(msg ...string) *NumberSchema {
	return s.addCheck(check[float64]{
		code: goshape.CodeNotFinite,
		msg:  firstOf(msg),
		ok:   func(v float64) bool { return !math.IsInf(v, 0) },
	}, nil)
}

// Coerce accepts numeric strings and booleans.
func (s *NumberSchema) Coerce() *NumberSchema {
	return s.with(func(n *NumberSchema) { n.coerce = true })
}

func (s *NumberSchema) JSONSchema() (*js.Schema, error) {
	out := s.proj
	out.Type = "number"
	if s.isInt {
		out.Type = "integer"
	}
	return s.project(&out), nil
}
