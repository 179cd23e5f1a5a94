// Package decode turns JSON and YAML documents into untyped Go values
// (map[string]any, []any, json.Number, string, bool, nil) and reports input
// problems that only the raw document can reveal: duplicate keys and excessive
// nesting.
package decode

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Problem is an input-level finding located by path segments (string keys and
// int indexes).
type Problem struct {
	Code    string
	Path    []any
	Message string
}

const (
	CodeDuplicateKey = "duplicate_key"
	CodeTooDeep      = "too_deep"
)

// ErrTooLarge is returned when a reader exceeds the configured byte limit.
var ErrTooLarge = errors.New("decode: input exceeds size limit")

// JSON decodes a single JSON document. Numbers are kept as json.Number so no
// precision is lost before a schema decides how to read them.
func JSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	// trailing data after the first value is an error
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, errors.New("decode json: unexpected data after top-level value")
	}
	return normalizeNumbers(v), nil
}

// ReadAll reads r up to max bytes (0 = unlimited).
func ReadAll(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, ErrTooLarge
	}
	return b, nil
}

type numberLike interface {
	String() string
	Float64() (float64, error)
	Int64() (int64, error)
}

// normalizeNumbers rewrites driver-specific number values into
// encoding/json.Number so callers depend on one representation.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	case stdjson.Number:
		return t
	case numberLike:
		return stdjson.Number(t.String())
	default:
		return v
	}
}

// Depth reports the first path at which container nesting exceeds max. A
// max of 0 disables the check.
func Depth(v any, max int) (*Problem, bool) {
	if max <= 0 {
		return nil, false
	}
	var walk func(v any, depth int, path []any) *Problem
	walk = func(v any, depth int, path []any) *Problem {
		switch t := v.(type) {
		case map[string]any:
			depth++
			if depth > max {
				return &Problem{Code: CodeTooDeep, Path: path, Message: fmt.Sprintf("nesting depth exceeds %d", max)}
			}
			for _, k := range sortedKeys(t) {
				if p := walk(t[k], depth, appendPath(path, k)); p != nil {
					return p
				}
			}
		case []any:
			depth++
			if depth > max {
				return &Problem{Code: CodeTooDeep, Path: path, Message: fmt.Sprintf("nesting depth exceeds %d", max)}
			}
			for i, e := range t {
				if p := walk(e, depth, appendPath(path, i)); p != nil {
					return p
				}
			}
		}
		return nil
	}
	if p := walk(v, 0, nil); p != nil {
		return p, true
	}
	return nil, false
}

func appendPath(path []any, seg any) []any {
	out := make([]any, 0, len(path)+1)
	out = append(out, path...)
	return append(out, seg)
}
