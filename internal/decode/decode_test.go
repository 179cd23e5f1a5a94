package decode

import (
	stdjson "encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestJSON_KeepsNumbersAsJSONNumber(t *testing.T) {
	v, err := JSON([]byte(`{"n": 12345678901234567890, "f": 1.5, "a": [1, "x", null, true]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if n, ok := m["n"].(stdjson.Number); !ok || n.String() != "12345678901234567890" {
		t.Fatalf("expected json.Number, got %T %v", m["n"], m["n"])
	}
	arr := m["a"].([]any)
	if _, ok := arr[0].(stdjson.Number); !ok {
		t.Fatalf("expected nested json.Number, got %T", arr[0])
	}
	if arr[2] != nil || arr[3] != true {
		t.Fatalf("unexpected array contents: %#v", arr)
	}
}

func TestJSON_RejectsTrailingData(t *testing.T) {
	if _, err := JSON([]byte(`{"a":1} {"b":2}`)); err == nil {
		t.Fatal("expected error for trailing data")
	}
	if _, err := JSON([]byte(`{"a":`)); err == nil {
		t.Fatal("expected error for truncated input")
	}
}

func TestJSONDuplicateKeys_ReportsPaths(t *testing.T) {
	in := `{"a":1,"b":{"x":1,"x":2},"c":[{"k":1},{"k":1,"k":2}],"a":3}`
	got, err := JSONDuplicateKeys([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]any{{"b", "x"}, {"c", 1, "k"}, {"a"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d problems, got %#v", len(want), got)
	}
	for i, p := range got {
		if p.Code != CodeDuplicateKey {
			t.Fatalf("unexpected code %q", p.Code)
		}
		if !reflect.DeepEqual(p.Path, want[i]) {
			t.Fatalf("problem %d path = %#v, want %#v", i, p.Path, want[i])
		}
	}
}

func TestYAML_StringKeysAndDuplicates(t *testing.T) {
	in := "name: demo\ncount: 3\nnested:\n  ok: true\n  ok: false\nlist:\n  - 1\n  - two\n"
	v, problems, err := YAML([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := v.(map[string]any)
	if m["name"] != "demo" || m["count"] != 3 {
		t.Fatalf("unexpected scalars: %#v", m)
	}
	if nested := m["nested"].(map[string]any); nested["ok"] != false {
		t.Fatalf("expected last duplicate to win, got %#v", nested)
	}
	if len(problems) != 1 || !reflect.DeepEqual(problems[0].Path, []any{"nested", "ok"}) {
		t.Fatalf("unexpected problems: %#v", problems)
	}
	if list := m["list"].([]any); len(list) != 2 || list[1] != "two" {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestYAML_Invalid(t *testing.T) {
	if _, _, err := YAML([]byte("a: [1, 2")); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestDepth(t *testing.T) {
	v := map[string]any{"a": map[string]any{"b": []any{map[string]any{}}}}
	if _, exceeded := Depth(v, 4); exceeded {
		t.Fatal("depth 4 should be allowed")
	}
	p, exceeded := Depth(v, 2)
	if !exceeded {
		t.Fatal("expected depth violation")
	}
	if !reflect.DeepEqual(p.Path, []any{"a", "b"}) || p.Code != CodeTooDeep {
		t.Fatalf("unexpected problem: %#v", p)
	}
	if _, exceeded := Depth(v, 0); exceeded {
		t.Fatal("0 disables the check")
	}
}

func TestReadAll_Limit(t *testing.T) {
	if _, err := ReadAll(strings.NewReader("12345"), 4); err != ErrTooLarge {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	b, err := ReadAll(strings.NewReader("1234"), 4)
	if err != nil || string(b) != "1234" {
		t.Fatalf("unexpected result %q %v", b, err)
	}
}
