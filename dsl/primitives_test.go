package dsl_test

import (
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"testing"
	"time"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func TestString_KindAndConstraints(t *testing.T) {
	expectEqual(t, mustParse(t, g.String(), "hello"), "hello")
	iss := mustFail(t, g.String(), 1)
	expectIssues(t, iss, [2]string{goshape.CodeTypeMismatch, "/"})
	if iss[0].Params["expected"] != "string" || iss[0].Params["received"] != "number" {
		t.Fatalf("unexpected params: %#v", iss[0].Params)
	}
	if iss[0].Message != "Expected string, received number" {
		t.Fatalf("unexpected message: %q", iss[0].Message)
	}

	s := g.String().Min(3).Max(5)
	mustParse(t, s, "abc")
	expectIssues(t, mustFail(t, s, "ab"), [2]string{goshape.CodeTooSmall, "/"})
	expectIssues(t, mustFail(t, s, "abcdef"), [2]string{goshape.CodeTooLarge, "/"})
	expectIssues(t, mustFail(t, g.String().Length(2), "abc"), [2]string{goshape.CodeInvalidLength, "/"})
	// runes, not bytes
	mustParse(t, g.String().Max(2), "日本")
}

func TestString_FirstFailingConstraintOnly(t *testing.T) {
	s := g.String().Min(5).Email()
	iss := mustFail(t, s, "a@b")
	expectIssues(t, iss, [2]string{goshape.CodeTooSmall, "/"})
}

func TestString_Formats(t *testing.T) {
	cases := []struct {
		name string
		s    *g.StringSchema
		ok   string
		bad  string
	}{
		{"email", g.String().Email(), "user@example.com", "not-an-email"},
		{"url", g.String().URL(), "https://example.com/x", "example.com"},
		{"uuid", g.String().UUID(), "123e4567-e89b-12d3-a456-426614174000", "123e4567"},
		{"datetime", g.String().Datetime(), "2024-01-02T03:04:05Z", "2024-01-02"},
		{"regex", g.String().Regex(regexp.MustCompile(`^[a-z]+$`)), "abc", "ABC"},
		{"startsWith", g.String().StartsWith("ab"), "abc", "cab"},
		{"endsWith", g.String().EndsWith("bc"), "abc", "bca"},
		{"includes", g.String().Includes("b"), "abc", "ac"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mustParse(t, tc.s, tc.ok)
			expectIssues(t, mustFail(t, tc.s, tc.bad), [2]string{goshape.CodeInvalidFormat, "/"})
		})
	}
}

func TestString_NormalizeAndCoerce(t *testing.T) {
	expectEqual(t, mustParse(t, g.String().Trim().ToLower().Min(3), "  ABC "), "abc")
	expectEqual(t, mustParse(t, g.String().ToUpper(), "abc"), "ABC")
	expectEqual(t, mustParse(t, g.String().Coerce(), 42), "42")
	expectEqual(t, mustParse(t, g.String().Coerce(), true), "true")
	expectEqual(t, mustParse(t, g.String().Coerce(), json.Number("1.50")), "1.50")
}

func TestString_CustomMessages(t *testing.T) {
	s := g.String().Min(3, "too short").Messages(g.Messages{Required: "name is required", InvalidType: "name must be text"})
	if iss := mustFail(t, s, "a"); iss[0].Message != "too short" {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}
	if iss := mustFail(t, s, goshape.Undefined); iss[0].Message != "name is required" {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}
	if iss := mustFail(t, s, 5); iss[0].Message != "name must be text" {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}
}

func TestNumber_AcceptsAllNumericRepresentations(t *testing.T) {
	for _, in := range []any{3, int8(3), int64(3), uint16(3), float32(3), 3.0, json.Number("3")} {
		expectEqual(t, mustParse(t, g.Number(), in), 3.0)
	}
	expectIssues(t, mustFail(t, g.Number(), "3"), [2]string{goshape.CodeTypeMismatch, "/"})
	expectIssues(t, mustFail(t, g.Number(), math.NaN()), [2]string{goshape.CodeTypeMismatch, "/"})
}

func TestNumber_Bounds(t *testing.T) {
	s := g.Number().Gt(0).Lt(100)
	mustParse(t, s, 50)
	iss := mustFail(t, s, 150)
	expectIssues(t, iss, [2]string{goshape.CodeTooLarge, "/"})
	if iss[0].Message != "Number must be less than 100" {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}
	expectIssues(t, mustFail(t, s, 0), [2]string{goshape.CodeTooSmall, "/"})
	mustParse(t, g.Number().Gte(0).Lte(10), 10)
	mustParse(t, g.Number().Min(0).Max(10), 0)
	expectIssues(t, mustFail(t, g.Number().Positive(), 0), [2]string{goshape.CodeTooSmall, "/"})
	mustParse(t, g.Number().NonNegative(), 0)
	expectIssues(t, mustFail(t, g.Number().Negative(), 0), [2]string{goshape.CodeTooLarge, "/"})
	mustParse(t, g.Number().NonPositive(), 0)
}

func TestNumber_IntMultipleFinite(t *testing.T) {
	mustParse(t, g.Number().Int(), 4)
	iss := mustFail(t, g.Number().Int(), 4.5)
	expectIssues(t, iss, [2]string{goshape.CodeTypeMismatch, "/"})
	if iss[0].Params["expected"] != "integer" {
		t.Fatalf("unexpected params %#v", iss[0].Params)
	}
	mustParse(t, g.Number().MultipleOf(0.5), 2.5)
	expectIssues(t, mustFail(t, g.Number().MultipleOf(3), 10), [2]string{goshape.CodeNotMultipleOf, "/"})
	mustParse(t, g.Number(), math.Inf(1))
	expectIssues(t, mustFail(t, g.Number().Finite(), math.Inf(1)), [2]string{goshape.CodeNotFinite, "/"})
}

func TestNumber_IntMessageOnlyForFractions(t *testing.T) {
	s := g.Number().Int("must be whole")
	iss := mustFail(t, s, 4.5)
	expectIssues(t, iss, [2]string{goshape.CodeTypeMismatch, "/"})
	if iss[0].Message != "must be whole" {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}
	iss = mustFail(t, s, "4")
	expectIssues(t, iss, [2]string{goshape.CodeTypeMismatch, "/"})
	if iss[0].Message == "must be whole" {
		t.Fatal("kind mismatch should keep the default message")
	}
}

func TestNumber_Coerce(t *testing.T) {
	expectEqual(t, mustParse(t, g.Number().Coerce(), " 12.5 "), 12.5)
	expectEqual(t, mustParse(t, g.Number().Coerce(), true), 1.0)
	expectIssues(t, mustFail(t, g.Number().Coerce(), "abc"), [2]string{goshape.CodeTypeMismatch, "/"})
	expectIssues(t, mustFail(t, g.Number().Coerce(), ""), [2]string{goshape.CodeTypeMismatch, "/"})
}

func TestBoolean(t *testing.T) {
	expectEqual(t, mustParse(t, g.Boolean(), false), false)
	expectIssues(t, mustFail(t, g.Boolean(), "true"), [2]string{goshape.CodeTypeMismatch, "/"})
}

func TestBigInt(t *testing.T) {
	out := mustParse(t, g.BigInt(), json.Number("123456789012345678901234567890"))
	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	if out.(*big.Int).Cmp(want) != 0 {
		t.Fatalf("unexpected value %v", out)
	}
	if mustParse(t, g.BigInt(), 7).(*big.Int).Int64() != 7 {
		t.Fatal("expected int input to be accepted")
	}
	expectIssues(t, mustFail(t, g.BigInt(), 1.5), [2]string{goshape.CodeTypeMismatch, "/"})
	expectIssues(t, mustFail(t, g.BigInt(), json.Number("1.5")), [2]string{goshape.CodeTypeMismatch, "/"})
	expectIssues(t, mustFail(t, g.BigInt().Gt(10), 10), [2]string{goshape.CodeTooSmall, "/"})
	expectIssues(t, mustFail(t, g.BigInt().Lte(10), 11), [2]string{goshape.CodeTooLarge, "/"})

	// the output never aliases the input
	in := big.NewInt(5)
	got := mustParse(t, g.BigInt(), in).(*big.Int)
	got.SetInt64(6)
	if in.Int64() != 5 {
		t.Fatal("input mutated through output")
	}
}

func TestDate(t *testing.T) {
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	expectEqual(t, mustParse(t, g.Date(), ts), ts)
	expectIssues(t, mustFail(t, g.Date(), "2024-05-01T00:00:00Z"), [2]string{goshape.CodeTypeMismatch, "/"})
	got := mustParse(t, g.Date().Coerce(), "2024-05-01T00:00:00Z").(time.Time)
	if !got.Equal(ts) {
		t.Fatalf("unexpected time %v", got)
	}
	expectIssues(t, mustFail(t, g.Date().Coerce(), "May 1st"), [2]string{goshape.CodeInvalidFormat, "/"})
	s := g.Date().Min(ts).Max(ts.AddDate(0, 1, 0))
	expectIssues(t, mustFail(t, s, ts.AddDate(0, 0, -1)), [2]string{goshape.CodeTooSmall, "/"})
	expectIssues(t, mustFail(t, s, ts.AddDate(0, 2, 0)), [2]string{goshape.CodeTooLarge, "/"})
}

func TestLiteral(t *testing.T) {
	expectEqual(t, mustParse(t, g.Literal("tuna"), "tuna"), "tuna")
	iss := mustFail(t, g.Literal("tuna"), "salmon")
	expectIssues(t, iss, [2]string{goshape.CodeTypeMismatch, "/"})
	if iss[0].Message != `Expected "tuna", received "salmon"` {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}
	// numbers compare by value
	expectEqual(t, mustParse(t, g.Literal(12), json.Number("12")), 12)
	expectEqual(t, mustParse(t, g.Literal(true), true), true)
}

func TestEnum(t *testing.T) {
	fish := g.Enum("Salmon", "Tuna", "Trout")
	mustParse(t, fish, "Tuna")
	iss := mustFail(t, fish, "Carp")
	expectIssues(t, iss, [2]string{goshape.CodeTypeMismatch, "/"})
	if iss[0].Params["expected"] != `"Salmon" | "Tuna" | "Trout"` {
		t.Fatalf("unexpected params %#v", iss[0].Params)
	}
	expectEqual(t, fish.Options(), []string{"Salmon", "Tuna", "Trout"})
	expectEqual(t, fish.Extract("Salmon", "Carp").Options(), []string{"Salmon"})
	expectEqual(t, fish.Exclude("Salmon").Options(), []string{"Tuna", "Trout"})
	// deriving never touches the original
	expectEqual(t, fish.Options(), []string{"Salmon", "Tuna", "Trout"})
}

func TestNativeEnum(t *testing.T) {
	fruits := g.NativeEnum(map[string]any{"Apple": "apple", "Banana": "banana", "Cantaloupe": 3})
	expectEqual(t, mustParse(t, fruits, "apple"), "apple")
	expectEqual(t, mustParse(t, fruits, json.Number("3")), 3)
	expectIssues(t, mustFail(t, fruits, "Apple"), [2]string{goshape.CodeTypeMismatch, "/"})
	expectEqual(t, fruits.Options(), []any{"apple", "banana", 3})
}

func TestAny(t *testing.T) {
	expectEqual(t, mustParse(t, g.Any(), nil), nil)
	expectEqual(t, mustParse(t, g.Any(), []any{1}), []any{1})
	expectIssues(t, mustFail(t, g.Any(), goshape.Undefined), [2]string{goshape.CodeRequired, "/"})
	expectEqual(t, mustParse(t, g.Any().Optional(), goshape.Undefined), goshape.Undefined)
}
