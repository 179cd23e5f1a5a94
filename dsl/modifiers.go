package dsl

// Modifier methods. Every schema type carries the same set, each returning a
// modified copy of the receiver.

import (
	"context"
	"math/big"
	"time"

	goshape "github.com/reoring/goshape"
)

// ---- StringSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *StringSchema) Optional() *StringSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *StringSchema) Nullable() *StringSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *StringSchema) Nullish() *StringSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *StringSchema) Default(v any) *StringSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *StringSchema) DefaultFunc(fn func() any) *StringSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *StringSchema) Describe(text string) *StringSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *StringSchema) Messages(m Messages) *StringSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *StringSchema) Refine(pred func(string) bool, msg ...string) *StringSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *StringSchema) RefineWith(fn func(context.Context, string) error) *StringSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *StringSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- NumberSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *NumberSchema) Optional() *NumberSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *NumberSchema) Nullable() *NumberSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *NumberSchema) Nullish() *NumberSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *NumberSchema) Default(v any) *NumberSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *NumberSchema) DefaultFunc(fn func() any) *NumberSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *NumberSchema) Describe(text string) *NumberSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *NumberSchema) Messages(m Messages) *NumberSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *NumberSchema) Refine(pred func(float64) bool, msg ...string) *NumberSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *NumberSchema) RefineWith(fn func(context.Context, float64) error) *NumberSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *NumberSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- BooleanSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *BooleanSchema) Optional() *BooleanSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *BooleanSchema) Nullable() *BooleanSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *BooleanSchema) Nullish() *BooleanSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *BooleanSchema) Default(v any) *BooleanSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *BooleanSchema) DefaultFunc(fn func() any) *BooleanSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *BooleanSchema) Describe(text string) *BooleanSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *BooleanSchema) Messages(m Messages) *BooleanSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *BooleanSchema) Refine(pred func(bool) bool, msg ...string) *BooleanSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *BooleanSchema) RefineWith(fn func(context.Context, bool) error) *BooleanSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *BooleanSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- BigIntSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *BigIntSchema) Optional() *BigIntSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *BigIntSchema) Nullable() *BigIntSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *BigIntSchema) Nullish() *BigIntSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *BigIntSchema) Default(v any) *BigIntSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *BigIntSchema) DefaultFunc(fn func() any) *BigIntSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *BigIntSchema) Describe(text string) *BigIntSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *BigIntSchema) Messages(m Messages) *BigIntSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *BigIntSchema) Refine(pred func(*big.Int) bool, msg ...string) *BigIntSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *BigIntSchema) RefineWith(fn func(context.Context, *big.Int) error) *BigIntSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *BigIntSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- DateSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *DateSchema) Optional() *DateSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *DateSchema) Nullable() *DateSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *DateSchema) Nullish() *DateSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *DateSchema) Default(v any) *DateSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *DateSchema) DefaultFunc(fn func() any) *DateSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *DateSchema) Describe(text string) *DateSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *DateSchema) Messages(m Messages) *DateSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *DateSchema) Refine(pred func(time.Time) bool, msg ...string) *DateSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *DateSchema) RefineWith(fn func(context.Context, time.Time) error) *DateSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *DateSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- AnySchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *AnySchema) Optional() *AnySchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *AnySchema) Nullable() *AnySchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *AnySchema) Nullish() *AnySchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *AnySchema) Default(v any) *AnySchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *AnySchema) DefaultFunc(fn func() any) *AnySchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *AnySchema) Describe(text string) *AnySchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *AnySchema) Messages(m Messages) *AnySchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *AnySchema) Refine(pred func(any) bool, msg ...string) *AnySchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *AnySchema) RefineWith(fn func(context.Context, any) error) *AnySchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *AnySchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- LiteralSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *LiteralSchema) Optional() *LiteralSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *LiteralSchema) Nullable() *LiteralSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *LiteralSchema) Nullish() *LiteralSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *LiteralSchema) Default(v any) *LiteralSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *LiteralSchema) DefaultFunc(fn func() any) *LiteralSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *LiteralSchema) Describe(text string) *LiteralSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *LiteralSchema) Messages(m Messages) *LiteralSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *LiteralSchema) Refine(pred func(any) bool, msg ...string) *LiteralSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *LiteralSchema) RefineWith(fn func(context.Context, any) error) *LiteralSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *LiteralSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- EnumSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *EnumSchema) Optional() *EnumSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *EnumSchema) Nullable() *EnumSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *EnumSchema) Nullish() *EnumSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *EnumSchema) Default(v any) *EnumSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *EnumSchema) DefaultFunc(fn func() any) *EnumSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *EnumSchema) Describe(text string) *EnumSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *EnumSchema) Messages(m Messages) *EnumSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *EnumSchema) Refine(pred func(string) bool, msg ...string) *EnumSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *EnumSchema) RefineWith(fn func(context.Context, string) error) *EnumSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *EnumSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- NativeEnumSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *NativeEnumSchema) Optional() *NativeEnumSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *NativeEnumSchema) Nullable() *NativeEnumSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *NativeEnumSchema) Nullish() *NativeEnumSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *NativeEnumSchema) Default(v any) *NativeEnumSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *NativeEnumSchema) DefaultFunc(fn func() any) *NativeEnumSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *NativeEnumSchema) Describe(text string) *NativeEnumSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *NativeEnumSchema) Messages(m Messages) *NativeEnumSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *NativeEnumSchema) Refine(pred func(any) bool, msg ...string) *NativeEnumSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *NativeEnumSchema) RefineWith(fn func(context.Context, any) error) *NativeEnumSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *NativeEnumSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- ObjectSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *ObjectSchema) Optional() *ObjectSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *ObjectSchema) Nullable() *ObjectSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *ObjectSchema) Nullish() *ObjectSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *ObjectSchema) Default(v any) *ObjectSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *ObjectSchema) DefaultFunc(fn func() any) *ObjectSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *ObjectSchema) Describe(text string) *ObjectSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *ObjectSchema) Messages(m Messages) *ObjectSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *ObjectSchema) Refine(pred func(map[string]any) bool, msg ...string) *ObjectSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *ObjectSchema) RefineWith(fn func(context.Context, map[string]any) error) *ObjectSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *ObjectSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- ArraySchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *ArraySchema) Optional() *ArraySchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *ArraySchema) Nullable() *ArraySchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *ArraySchema) Nullish() *ArraySchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *ArraySchema) Default(v any) *ArraySchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *ArraySchema) DefaultFunc(fn func() any) *ArraySchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *ArraySchema) Describe(text string) *ArraySchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *ArraySchema) Messages(m Messages) *ArraySchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *ArraySchema) Refine(pred func([]any) bool, msg ...string) *ArraySchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *ArraySchema) RefineWith(fn func(context.Context, []any) error) *ArraySchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *ArraySchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- TupleSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *TupleSchema) Optional() *TupleSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *TupleSchema) Nullable() *TupleSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *TupleSchema) Nullish() *TupleSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *TupleSchema) Default(v any) *TupleSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *TupleSchema) DefaultFunc(fn func() any) *TupleSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *TupleSchema) Describe(text string) *TupleSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *TupleSchema) Messages(m Messages) *TupleSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *TupleSchema) Refine(pred func([]any) bool, msg ...string) *TupleSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *TupleSchema) RefineWith(fn func(context.Context, []any) error) *TupleSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *TupleSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- UnionSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *UnionSchema) Optional() *UnionSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *UnionSchema) Nullable() *UnionSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *UnionSchema) Nullish() *UnionSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *UnionSchema) Default(v any) *UnionSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *UnionSchema) DefaultFunc(fn func() any) *UnionSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *UnionSchema) Describe(text string) *UnionSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *UnionSchema) Messages(m Messages) *UnionSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *UnionSchema) Refine(pred func(any) bool, msg ...string) *UnionSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *UnionSchema) RefineWith(fn func(context.Context, any) error) *UnionSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *UnionSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- DiscriminatedUnionSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *DiscriminatedUnionSchema) Optional() *DiscriminatedUnionSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *DiscriminatedUnionSchema) Nullable() *DiscriminatedUnionSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *DiscriminatedUnionSchema) Nullish() *DiscriminatedUnionSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *DiscriminatedUnionSchema) Default(v any) *DiscriminatedUnionSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *DiscriminatedUnionSchema) DefaultFunc(fn func() any) *DiscriminatedUnionSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *DiscriminatedUnionSchema) Describe(text string) *DiscriminatedUnionSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *DiscriminatedUnionSchema) Messages(m Messages) *DiscriminatedUnionSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *DiscriminatedUnionSchema) Refine(pred func(map[string]any) bool, msg ...string) *DiscriminatedUnionSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *DiscriminatedUnionSchema) RefineWith(fn func(context.Context, map[string]any) error) *DiscriminatedUnionSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *DiscriminatedUnionSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- RecordSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *RecordSchema) Optional() *RecordSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *RecordSchema) Nullable() *RecordSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *RecordSchema) Nullish() *RecordSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *RecordSchema) Default(v any) *RecordSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *RecordSchema) DefaultFunc(fn func() any) *RecordSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *RecordSchema) Describe(text string) *RecordSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *RecordSchema) Messages(m Messages) *RecordSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *RecordSchema) Refine(pred func(map[string]any) bool, msg ...string) *RecordSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *RecordSchema) RefineWith(fn func(context.Context, map[string]any) error) *RecordSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *RecordSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- MapSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *MapSchema) Optional() *MapSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *MapSchema) Nullable() *MapSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *MapSchema) Nullish() *MapSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *MapSchema) Default(v any) *MapSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *MapSchema) DefaultFunc(fn func() any) *MapSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *MapSchema) Describe(text string) *MapSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *MapSchema) Messages(m Messages) *MapSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *MapSchema) Refine(pred func(map[any]any) bool, msg ...string) *MapSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *MapSchema) RefineWith(fn func(context.Context, map[any]any) error) *MapSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *MapSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- SetSchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *SetSchema) Optional() *SetSchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *SetSchema) Nullable() *SetSchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *SetSchema) Nullish() *SetSchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *SetSchema) Default(v any) *SetSchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *SetSchema) DefaultFunc(fn func() any) *SetSchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *SetSchema) Describe(text string) *SetSchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *SetSchema) Messages(m Messages) *SetSchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *SetSchema) Refine(pred func([]any) bool, msg ...string) *SetSchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *SetSchema) RefineWith(fn func(context.Context, []any) error) *SetSchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *SetSchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }

// ---- LazySchema ----

// Optional accepts absent input; the output is then goshape.Undefined.
func (s *LazySchema) Optional() *LazySchema { return modify(s, optional) }

// Nullable accepts nil.
func (s *LazySchema) Nullable() *LazySchema { return modify(s, nullable) }

// Nullish is Optional and Nullable.
func (s *LazySchema) Nullish() *LazySchema { return modify(s, nullish) }

// Default substitutes a deep copy of v for absent input.
func (s *LazySchema) Default(v any) *LazySchema { return modify(s, withDefault(v)) }

// DefaultFunc substitutes fn() for absent input, calling fn once per parse.
func (s *LazySchema) DefaultFunc(fn func() any) *LazySchema { return modify(s, withDefaultFunc(fn)) }

// Describe sets the description used in JSON Schema output.
func (s *LazySchema) Describe(text string) *LazySchema { return modify(s, withDescription(text)) }

// Messages overrides the presence and kind messages.
func (s *LazySchema) Messages(m Messages) *LazySchema { return modify(s, withMessages(m)) }

// Refine adds a predicate that runs once the value passed every other check.
func (s *LazySchema) Refine(pred func(any) bool, msg ...string) *LazySchema {
	return modify(s, withRefinement(predicate(pred, msg)))
}

// RefineWith adds a check that reports its error as an issue. Returning
// goshape.Issues places issues at paths relative to this node.
func (s *LazySchema) RefineWith(fn func(context.Context, any) error) *LazySchema {
	return modify(s, withRefinement(contextual(fn)))
}

func (s *LazySchema) update(fn func(*base)) goshape.Schema { return modify(s, fn) }
