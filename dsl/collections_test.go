package dsl_test

import (
	"testing"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func TestRecord(t *testing.T) {
	s := g.Record(g.Number())
	expectEqual(t, mustParse(t, s, map[string]any{"a": 1, "b": 2}), map[string]any{"a": 1.0, "b": 2.0})
	expectIssues(t, mustFail(t, s, map[string]any{"b": "x", "a": "y"}),
		[2]string{goshape.CodeTypeMismatch, "/a"},
		[2]string{goshape.CodeTypeMismatch, "/b"},
	)

	keyed := g.RecordOf(g.String().Min(2), g.Boolean())
	expectIssues(t, mustFail(t, keyed, map[string]any{"x": true}), [2]string{goshape.CodeTooSmall, "/x"})
	expectIssues(t, mustFail(t, s, []any{}), [2]string{goshape.CodeTypeMismatch, "/"})
}

func TestMap(t *testing.T) {
	s := g.Map(g.Number(), g.String())
	out := mustParse(t, s, map[int]string{1: "a", 2: "b"})
	expectEqual(t, out, map[any]any{1.0: "a", 2.0: "b"})

	iss := mustFail(t, s, map[any]any{"k": "v", 3: 4})
	expectIssues(t, iss,
		[2]string{goshape.CodeTypeMismatch, "/3"},
		[2]string{goshape.CodeTypeMismatch, "/k"},
	)
	expectIssues(t, mustFail(t, s, []any{}), [2]string{goshape.CodeTypeMismatch, "/"})
}

func TestSet(t *testing.T) {
	s := g.Set(g.Number())
	expectEqual(t, mustParse(t, s, []any{1, 2, 1.0, 3}), []any{1.0, 2.0, 3.0})
	expectIssues(t, mustFail(t, s.Min(3), []any{1, 1, 2}), [2]string{goshape.CodeTooSmall, "/"})
	expectIssues(t, mustFail(t, s.Max(1), []any{1, 2}), [2]string{goshape.CodeTooLarge, "/"})
	expectIssues(t, mustFail(t, s.Size(2), []any{1}), [2]string{goshape.CodeInvalidLength, "/"})
	expectIssues(t, mustFail(t, s.NonEmpty(), []any{}), [2]string{goshape.CodeTooSmall, "/"})
	expectIssues(t, mustFail(t, s, []any{1, "x"}), [2]string{goshape.CodeTypeMismatch, "/1"})
}

func TestLazy_RecursiveSchema(t *testing.T) {
	var category goshape.Schema
	category = g.Object().
		Field("name", g.String()).
		Field("children", g.Array(g.Lazy(func() goshape.Schema { return category })))

	in := map[string]any{
		"name": "root",
		"children": []any{
			map[string]any{"name": "a", "children": []any{}},
			map[string]any{"name": 1, "children": []any{}},
		},
	}
	iss := mustFail(t, category, in)
	expectIssues(t, iss, [2]string{goshape.CodeTypeMismatch, "/children/1/name"})

	if _, err := category.JSONSchema(); err != nil {
		t.Fatalf("recursive projection failed: %v", err)
	}
}
