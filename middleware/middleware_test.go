package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
	"github.com/reoring/goshape/middleware"
)

func handler(t *testing.T, opts middleware.Options) http.Handler {
	t.Helper()
	s := g.Object().
		Field("name", g.String().Min(1)).
		Field("role", g.Enum("admin", "user").Default("user"))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := middleware.ValueFromContext(r.Context())
		require.True(t, ok)
		middleware.WriteJSON(w, http.StatusOK, v)
	})
	return middleware.ValidateJSON(s, opts)(next)
}

func do(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestValidateJSON_Accepts(t *testing.T) {
	rec := do(handler(t, middleware.Options{}), `{"name":"ann","extra":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"ann","role":"user"}`, rec.Body.String())
}

func TestValidateJSON_RejectsWithIssues(t *testing.T) {
	rec := do(handler(t, middleware.Options{}), `{"name":"","role":"root"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var p middleware.Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Len(t, p.Issues, 2)
	assert.Equal(t, "/name", p.Issues[0].Path)
	assert.Equal(t, goshape.CodeTooSmall, p.Issues[0].Code)
	assert.Equal(t, "/role", p.Issues[1].Path)
}

func TestValidateJSON_DuplicateKeysAndMalformed(t *testing.T) {
	h := handler(t, middleware.Options{})

	rec := do(h, `{"name":"a","name":"b"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), goshape.CodeDuplicateKey)

	rec = do(h, `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), goshape.CodeParseError)
}

func TestValidateJSON_CustomParseOptAndObserver(t *testing.T) {
	var observed []string
	opt := goshape.ParseOpt{}
	h := handler(t, middleware.Options{
		Name:     "user",
		ParseOpt: &opt,
		Observe: func(schema string, _ time.Duration, err error) {
			observed = append(observed, schema)
		},
	})
	rec := do(h, `{"name":"a","name":"b"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"b","role":"user"}`, rec.Body.String())
	assert.Equal(t, []string{"user"}, observed)
}

func TestErrorPayload_Branches(t *testing.T) {
	iss := goshape.Issues{{
		Code:     goshape.CodeNoUnionBranch,
		Branches: []goshape.Issues{{{Path: goshape.PathOf("a"), Code: goshape.CodeTypeMismatch}}},
	}}
	p := middleware.ErrorPayload(iss)
	require.Len(t, p.Issues[0].Branches, 1)
	assert.Equal(t, "/a", p.Issues[0].Branches[0][0].Path)
	assert.Equal(t, "/", p.Issues[0].Path)
}
