package goshape

import (
	"bytes"
	"context"
	"io"

	"github.com/reoring/goshape/internal/decode"
)

// Source supplies raw input to ParseFrom. Decode returns the untyped value
// together with input-level issues (duplicate keys) and a decoding error.
type Source interface {
	Decode(opt ParseOpt) (any, Issues, error)
}

// JSONBytes returns a Source over a JSON document.
func JSONBytes(b []byte) Source { return jsonSource{data: b} }

// JSONReader returns a Source that reads a JSON document from r. ParseOpt.MaxBytes
// caps how much is read.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

// YAMLBytes returns a Source over a YAML document.
func YAMLBytes(b []byte) Source { return yamlSource{data: b} }

// ValueSource wraps an already decoded value.
func ValueSource(v any) Source { return valueSource{v: v} }

type jsonSource struct {
	data []byte
	r    io.Reader
}

func (s jsonSource) Decode(opt ParseOpt) (any, Issues, error) {
	data := s.data
	if s.r != nil {
		b, err := decode.ReadAll(s.r, opt.MaxBytes)
		if err != nil {
			return nil, nil, err
		}
		data = b
	} else if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, nil, decode.ErrTooLarge
	}
	v, err := decode.JSON(bytes.TrimSpace(data))
	if err != nil {
		return nil, nil, err
	}
	if opt.Strictness.OnDuplicateKey != Error {
		return v, nil, nil
	}
	dups, err := decode.JSONDuplicateKeys(data)
	if err != nil {
		return nil, nil, err
	}
	return v, fromProblems(dups), nil
}

type yamlSource struct{ data []byte }

func (s yamlSource) Decode(opt ParseOpt) (any, Issues, error) {
	if opt.MaxBytes > 0 && int64(len(s.data)) > opt.MaxBytes {
		return nil, nil, decode.ErrTooLarge
	}
	v, dups, err := decode.YAML(s.data)
	if err != nil {
		return nil, nil, err
	}
	if opt.Strictness.OnDuplicateKey != Error {
		return v, nil, nil
	}
	return v, fromProblems(dups), nil
}

type valueSource struct{ v any }

func (s valueSource) Decode(ParseOpt) (any, Issues, error) { return s.v, nil, nil }

// ParseFrom decodes src and validates the result against s. Decoding failures
// are reported as a single parse_error issue. Duplicate keys become
// duplicate_key issues when opt.Strictness.OnDuplicateKey is Error; they are
// reported together with the schema's own issues. Exceeding opt.MaxDepth stops
// before validation with a too_deep issue.
func ParseFrom(ctx context.Context, s Schema, src Source, opts ...ParseOpt) (any, error) {
	if s == nil {
		return nil, Issues{{Code: CodeParseError, Message: "nil schema"}}
	}
	if src == nil {
		return nil, Issues{{Code: CodeParseError, Message: "nil source"}}
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	v, pre, err := src.Decode(opt)
	if err != nil {
		return nil, Issues{{Code: CodeParseError, Message: err.Error(), Params: map[string]any{"cause": err.Error()}}}
	}
	if p, exceeded := decode.Depth(v, opt.MaxDepth); exceeded {
		return nil, fromProblems([]decode.Problem{*p})
	}

	c := NewChecker(ctx)
	c.Add(pre...)
	out, ok := s.Check(c, v)
	if iss := c.Issues(); len(iss) > 0 {
		return nil, iss
	}
	if !ok {
		return nil, Issues{{Code: CodeParseError, Message: "validation failed without issues"}}
	}
	return out, nil
}

func fromProblems(ps []decode.Problem) Issues {
	if len(ps) == 0 {
		return nil
	}
	out := make(Issues, 0, len(ps))
	for _, p := range ps {
		out = append(out, Issue{Path: PathOf(p.Path...), Code: p.Code, Message: p.Message})
	}
	return out
}
