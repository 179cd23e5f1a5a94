package goshape

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Bind validates v against s and decodes the output into T. Struct fields are
// matched by their json tags. Validation failures are returned as Issues;
// decoding failures are wrapped errors.
func Bind[T any](ctx context.Context, s Schema, v any) (T, error) {
	var dst T
	out, err := Parse(ctx, s, v)
	if err != nil {
		return dst, err
	}
	if err := Decode(out, &dst); err != nil {
		return dst, err
	}
	return dst, nil
}

// Decode copies a validated output value into dst (a pointer).
func Decode(out any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     dst,
		DecodeHook: timeHook,
	})
	if err != nil {
		return fmt.Errorf("goshape: bind: %w", err)
	}
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("goshape: bind: %w", err)
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// timeHook lets string outputs (for example a Datetime-checked string) land
// in time.Time fields.
func timeHook(from, to reflect.Type, data any) (any, error) {
	if to != timeType || from.Kind() != reflect.String {
		return data, nil
	}
	return time.Parse(time.RFC3339Nano, reflect.ValueOf(data).String())
}
