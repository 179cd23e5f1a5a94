// Package codec converts between wire representations and Go domain values.
package codec

import (
	"context"
	"time"

	goshape "github.com/reoring/goshape"
)

// Codec converts a wire value A into a domain value B and back.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
func TimeRFC3339() Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(_ context.Context, a string) (time.Time, error) {
	t, err := ParseRFC3339(a)
	if err != nil {
		return time.Time{}, goshape.Issues{{
			Code:    goshape.CodeInvalidFormat,
			Message: "invalid RFC3339 time",
			Params:  map[string]any{"format": "datetime", "cause": err.Error()},
		}}
	}
	return t, nil
}

func (rfc3339Codec) Encode(_ context.Context, b time.Time) (string, error) {
	if b.IsZero() {
		return "", goshape.Issues{{Code: goshape.CodeRequired, Message: "cannot encode zero time"}}
	}
	return FormatRFC3339(b), nil
}

// ParseRFC3339 accepts RFC3339 with or without fractional seconds.
func ParseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// FormatRFC3339 normalizes to UTC and formats using RFC3339Nano (Go trims
// trailing zeros).
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
