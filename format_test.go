package goshape_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func TestPath_Rendering(t *testing.T) {
	p := goshape.PathOf("items", 2, "a/b~c")
	if got := p.Pointer(); got != "/items/2/a~1b~0c" {
		t.Fatalf("pointer: %q", got)
	}
	if got := p.String(); got != "items[2].a/b~c" {
		t.Fatalf("string: %q", got)
	}
	if got := goshape.Path(nil).Pointer(); got != "/" {
		t.Fatalf("root pointer: %q", got)
	}
	q := p.Append(goshape.Key("x"))
	if len(p) != 3 || len(q) != 4 || !q[:3].Equal(p) {
		t.Fatal("Append must not modify the receiver")
	}
}

func TestFormat_IncludesPathsAndBranches(t *testing.T) {
	ctx := context.Background()
	s := g.Object().
		Field("name", g.String()).
		Field("id", g.Union(g.String(), g.Number()))
	_, err := goshape.Parse(ctx, s, map[string]any{"id": true})
	iss, _ := goshape.AsIssues(err)
	out := goshape.Format(iss)
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[0], "name: ") {
		t.Fatalf("first line should be the missing name: %q", out)
	}
	if !strings.Contains(out, "  branch 0:") || !strings.Contains(out, "  branch 1:") {
		t.Fatalf("union branches missing from output:\n%s", out)
	}
}

func TestFormatterFunc_Replaces(t *testing.T) {
	f := goshape.FormatterFunc(func(iss goshape.Issues) string { return strings.Join(iss.Codes(), ",") })
	iss := goshape.Issues{{Code: "a"}, {Code: "b"}}
	if got := f.Format(iss); got != "a,b" {
		t.Fatalf("got %q", got)
	}
}

func TestFlatten_GroupsByTopLevelField(t *testing.T) {
	ctx := context.Background()
	s := g.Object().
		Field("user", g.Object().Field("email", g.String().Email())).
		Field("age", g.Number().Min(18)).
		Refine(func(map[string]any) bool { return false }, "form is invalid")
	_, err := goshape.Parse(ctx, s, map[string]any{
		"user": map[string]any{"email": "nope"},
		"age":  3,
	})
	iss, _ := goshape.AsIssues(err)
	flat := goshape.Flatten(iss)
	if len(flat.FieldErrors["user"]) != 1 || len(flat.FieldErrors["age"]) != 1 {
		t.Fatalf("unexpected field errors %#v", flat.FieldErrors)
	}
	// refinements only run on valid objects
	if len(flat.FormErrors) != 0 {
		t.Fatalf("unexpected form errors %#v", flat.FormErrors)
	}

	_, err = goshape.Parse(ctx, s, map[string]any{"user": map[string]any{"email": "a@b.io"}, "age": 20})
	iss, _ = goshape.AsIssues(err)
	flat = goshape.Flatten(iss)
	if !reflect.DeepEqual(flat.FormErrors, []string{"form is invalid"}) {
		t.Fatalf("unexpected form errors %#v", flat.FormErrors)
	}
}
