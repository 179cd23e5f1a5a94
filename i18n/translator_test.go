package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("type_mismatch", nil); msg == "type_mismatch" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("type_mismatch", nil); msg == "Invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Params(t *testing.T) {
	cases := []struct {
		code string
		data map[string]any
		want string
	}{
		{"type_mismatch", map[string]any{"expected": "string", "received": "number"}, "Expected string, received number"},
		{"too_large", map[string]any{"subject": "Number", "maximum": 100, "inclusive": false}, "Number must be less than 100"},
		{"too_small", map[string]any{"subject": "String length", "minimum": 3, "inclusive": true}, "String length must be greater than or equal to 3"},
		{"unrecognized_key", map[string]any{"key": "brithday"}, "Unrecognized key: brithday"},
		{"something_else", nil, "something_else"},
	}
	for _, tc := range cases {
		if got := T(tc.code, tc.data); got != tc.want {
			t.Errorf("T(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(TranslatorFunc(func(code string, _ map[string]any) string { return "custom:" + code }))
	if got := T("required_field_missing", nil); got != "custom:required_field_missing" {
		t.Fatalf("custom translator not used: %q", got)
	}
	SetTranslator(nil)
	if got := T("required_field_missing", nil); got != "Required" {
		t.Fatalf("expected reset to english, got %q", got)
	}
}
