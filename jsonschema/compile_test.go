package jsonschema_test

import (
	"strings"
	"testing"

	js "github.com/reoring/goshape/jsonschema"
)

func userSchema() *js.Schema {
	return &js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			"username": {Type: "string", MinLength: js.Int(1)},
			"age":      {Type: "number", ExclusiveMinimum: js.Float(0), ExclusiveMaximum: js.Float(100)},
			"tags":     {Type: "array", Items: &js.Schema{Type: "string"}},
			"pair":     {Type: "array", PrefixItems: []*js.Schema{{Type: "number"}, {Type: "string"}}, Items: false},
			"nick":     js.Nullable(&js.Schema{Type: "string"}),
		},
		Required:             []string{"username", "age"},
		AdditionalProperties: false,
	}
}

func TestMarshal_AddsDraft(t *testing.T) {
	b, err := js.Marshal(userSchema())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"$schema": "https://json-schema.org/draft/2020-12/schema"`, `"exclusiveMaximum": 100`, `"items": false`} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected %s in output:\n%s", want, s)
		}
	}
}

func TestCompile_ValidatesValues(t *testing.T) {
	v, err := js.Compile(userSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ok := map[string]any{"username": "a", "age": 42, "pair": []any{1, "x"}, "nick": nil}
	if err := v.Validate(ok); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	bad := map[string]any{"username": "a", "age": 150}
	if err := v.Validate(bad); err == nil {
		t.Fatal("expected age 150 to be rejected")
	}
	extra := map[string]any{"username": "a", "age": 1, "brithday": "x"}
	if err := v.Validate(extra); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
	tooLong := map[string]any{"username": "a", "age": 1, "pair": []any{1, "x", 3}}
	if err := v.Validate(tooLong); err == nil {
		t.Fatal("expected closed tuple to reject extra items")
	}
}

func TestCompileBytes_RejectsMalformed(t *testing.T) {
	if _, err := js.CompileBytes([]byte(`{"type": 12}`)); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestValidate_GoNativeValues(t *testing.T) {
	v, err := js.Compile(userSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	in := map[string]any{"username": "a", "age": int64(7), "tags": []string{"x", "y"}}
	if err := v.Validate(in); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := v.Validate(map[string]any{"username": "a", "age": uint8(200)}); err == nil {
		t.Fatal("expected age 200 to be rejected")
	}
}
