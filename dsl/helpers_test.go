package dsl_test

import (
	"context"
	"reflect"
	"testing"

	goshape "github.com/reoring/goshape"
)

func mustParse(t *testing.T, s goshape.Schema, v any) any {
	t.Helper()
	out, err := goshape.Parse(context.Background(), s, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func mustFail(t *testing.T, s goshape.Schema, v any) goshape.Issues {
	t.Helper()
	res := goshape.SafeParse(context.Background(), s, v)
	if res.Success {
		t.Fatalf("expected failure, got %#v", res.Value)
	}
	return res.Issues
}

// expectIssues asserts codes and pointers of iss, in order.
func expectIssues(t *testing.T, iss goshape.Issues, want ...[2]string) {
	t.Helper()
	if len(iss) != len(want) {
		t.Fatalf("expected %d issues, got %d: %v", len(want), len(iss), iss)
	}
	for i, w := range want {
		if iss[i].Code != w[0] || iss[i].Pointer() != w[1] {
			t.Fatalf("issue %d = %s at %s, want %s at %s", i, iss[i].Code, iss[i].Pointer(), w[0], w[1])
		}
	}
}

func expectEqual(t *testing.T, got, want any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}
