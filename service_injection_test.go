package goshape_test

import (
	"context"
	"testing"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

type usernameTaken interface {
	Taken(ctx context.Context, name string) bool
}

type takenSet map[string]bool

func (s takenSet) Taken(_ context.Context, name string) bool { return s[name] }

func uniqueUsername() *g.StringSchema {
	return g.String().RefineWith(func(ctx context.Context, name string) error {
		svc, err := goshape.RequireService[usernameTaken](ctx)
		if err != nil {
			return err
		}
		if svc.Taken(ctx, name) {
			return goshape.Issues{{Code: "username_taken", Message: "username is taken"}}
		}
		return nil
	})
}

func TestService_RoundTrip(t *testing.T) {
	ctx := goshape.WithService[usernameTaken](context.Background(), takenSet{"root": true})
	if _, ok := goshape.Service[usernameTaken](ctx); !ok {
		t.Fatal("service should be found")
	}
	if _, ok := goshape.Service[usernameTaken](context.Background()); ok {
		t.Fatal("service should be missing")
	}
	if _, ok := goshape.Service[usernameTaken](nil); ok {
		t.Fatal("nil context should report missing")
	}
}

func TestService_UsedByRefinement(t *testing.T) {
	s := g.Object().Field("username", uniqueUsername())
	ctx := goshape.WithService[usernameTaken](context.Background(), takenSet{"root": true})

	if _, err := goshape.Parse(ctx, s, map[string]any{"username": "ann"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := goshape.Parse(ctx, s, map[string]any{"username": "root"})
	iss, _ := goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != "username_taken" || iss[0].Pointer() != "/username" {
		t.Fatalf("unexpected issues %v", iss)
	}

	_, err = goshape.Parse(context.Background(), s, map[string]any{"username": "ann"})
	iss, _ = goshape.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != goshape.CodeDependencyUnavailable {
		t.Fatalf("expected dependency_unavailable, got %v", iss)
	}
}
