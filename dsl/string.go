package dsl

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/codec"
	js "github.com/reoring/goshape/jsonschema"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)

// StringSchema validates strings. Normalizers (Trim, ToLower, ToUpper) run
// before the checks, in declaration order.
type StringSchema struct {
	base
	checks    []check[string]
	normalize []func(string) string
	coerce    bool
	minLen    *int
	maxLen    *int
	pattern   string
	format    string
}

// String returns a schema accepting string values.
func String() *StringSchema { return &StringSchema{} }

func (s *StringSchema) Kind() goshape.Kind { return goshape.KindString }

func (s *StringSchema) Check(c *goshape.Checker, v any) (any, bool) {
	return s.run(c, v, func(v any) (any, bool) {
		str, ok := v.(string)
		if !ok && s.coerce {
			str, ok = coerceString(v)
		}
		if !ok {
			s.mismatch(c, "string", v)
			return nil, false
		}
		for _, fn := range s.normalize {
			str = fn(str)
		}
		if !runChecks(c, s.checks, str) {
			return nil, false
		}
		return str, true
	})
}

func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case fmt.Stringer:
		return t.String(), true
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

func (s *StringSchema) with(fn func(*StringSchema)) *StringSchema {
	cp := *s
	fn(&cp)
	return &cp
}

func (s *StringSchema) addCheck(ck check[string]) *StringSchema {
	return s.with(func(n *StringSchema) { n.checks = appendClone(n.checks, ck) })
}

// Min requires at least n characters (runes).
func (s *StringSchema) Min(n int, msg ...string) *StringSchema {
	out := s.addCheck(check[string]{
		code:   goshape.CodeTooSmall,
		params: map[string]any{"minimum": n, "inclusive": true, "subject": "String length"},
		msg:    firstOf(msg),
		ok:     func(v string) bool { return utf8.RuneCountInString(v) >= n },
	})
	out.minLen = &n
	return out
}

// Max allows at most n characters (runes).
func (s *StringSchema) Max(n int, msg ...string) *StringSchema {
	out := s.addCheck(check[string]{
		code:   goshape.CodeTooLarge,
		params: map[string]any{"maximum": n, "inclusive": true, "subject": "String length"},
		msg:    firstOf(msg),
		ok:     func(v string) bool { return utf8.RuneCountInString(v) <= n },
	})
	out.maxLen = &n
	return out
}

// Length requires exactly n characters (runes).
func (s *StringSchema) Length(n int, msg ...string) *StringSchema {
	out := s.addCheck(check[string]{
		code:   goshape.CodeInvalidLength,
		params: map[string]any{"exact": n},
		msg:    firstOf(msg),
		ok:     func(v string) bool { return utf8.RuneCountInString(v) == n },
	})
	out.minLen, out.maxLen = &n, &n
	return out
}

// NonEmpty is Min(1).
func (s *StringSchema) NonEmpty(msg ...string) *StringSchema { return s.Min(1, msg...) }

func (s *StringSchema) formatCheck(format string, ok func(string) bool, msg []string) *StringSchema {
	out := s.addCheck(check[string]{
		code:   goshape.CodeInvalidFormat,
		params: map[string]any{"format": format},
		msg:    firstOf(msg),
		ok:     ok,
	})
	if out.format == "" {
		out.format = format
	}
	return out
}

// Email requires a plausible e-mail address.
func (s *StringSchema) Email(msg ...string) *StringSchema {
	return s.formatCheck("email", emailPattern.MatchString, msg)
}

// URL requires an absolute URL with scheme and host.
func (s *StringSchema) URL(msg ...string) *StringSchema {
	return s.formatCheck("uri", func(v string) bool {
		u, err := url.ParseRequestURI(v)
		return err == nil && u.Scheme != "" && u.Host != ""
	}, msg)
}

// UUID requires an RFC 4122 UUID in canonical textual form.
func (s *StringSchema) UUID(msg ...string) *StringSchema {
	return s.formatCheck("uuid", func(v string) bool {
		if len(v) != 36 {
			return false
		}
		_, err := uuid.Parse(v)
		return err == nil
	}, msg)
}

// Datetime requires an RFC 3339 timestamp.
func (s *StringSchema) Datetime(msg ...string) *StringSchema {
	return s.formatCheck("date-time", func(v string) bool {
		_, err := codec.ParseRFC3339(v)
		return err == nil
	}, msg)
}

// Regex requires a match of re.
func (s *StringSchema) Regex(re *regexp.Regexp, msg ...string) *StringSchema {
	out := s.addCheck(check[string]{
		code:   goshape.CodeInvalidFormat,
		params: map[string]any{"format": "regex", "pattern": re.String()},
		msg:    firstOf(msg),
		ok:     re.MatchString,
	})
	out.pattern = re.String()
	return out
}

// StartsWith requires the prefix p.
func (s *StringSchema) StartsWith(p string, msg ...string) *StringSchema {
	return s.addCheck(check[string]{
		code:   goshape.CodeInvalidFormat,
		params: map[string]any{"format": "input: must start with " + strconv.Quote(p), "startsWith": p},
		msg:    firstOf(msg),
		ok:     func(v string) bool { return strings.HasPrefix(v, p) },
	})
}

// EndsWith requires the suffix p.
func (s *StringSchema) EndsWith(p string, msg ...string) *StringSchema {
	return s.addCheck(check[string]{
		code:   goshape.CodeInvalidFormat,
		params: map[string]any{"format": "input: must end with " + strconv.Quote(p), "endsWith": p},
		msg:    firstOf(msg),
		ok:     func(v string) bool { return strings.HasSuffix(v, p) },
	})
}

// Includes requires the substring p.
func (s *StringSchema) Includes(p string, msg ...string) *StringSchema {
	return s.addCheck(check[string]{
		code:   goshape.CodeInvalidFormat,
		params: map[string]any{"format": "input: must include " + strconv.Quote(p), "includes": p},
		msg:    firstOf(msg),
		ok:     func(v string) bool { return strings.Contains(v, p) },
	})
}

// Trim strips leading and trailing white space before the checks run.
func (s *StringSchema) Trim() *StringSchema {
	return s.with(func(n *StringSchema) { n.normalize = appendClone(n.normalize, strings.TrimSpace) })
}

// ToLower lower-cases the value before the checks run.
func (s *StringSchema) ToLower() *StringSchema {
	return s.with(func(n *StringSchema) { n.normalize = appendClone(n.normalize, strings.ToLower) })
}

// ToUpper upper-cases the value before the checks run.
func (s *StringSchema) ToUpper() *StringSchema {
	return s.with(func(n *StringSchema) { n.normalize = appendClone(n.normalize, strings.ToUpper) })
}

// Coerce converts numbers and booleans to their string form.
func (s *StringSchema) Coerce() *StringSchema {
	return s.with(func(n *StringSchema) { n.coerce = true })
}

func (s *StringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string", MinLength: s.minLen, MaxLength: s.maxLen, Pattern: s.pattern, Format: s.format}
	return s.project(out), nil
}
