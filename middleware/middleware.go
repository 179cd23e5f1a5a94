// Package middleware validates JSON request bodies with a goshape schema.
// It is plain net/http, so it works with chi, the standard mux or anything
// accepting func(http.Handler) http.Handler.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	goshape "github.com/reoring/goshape"
)

// ctxKeyValue is a typed context key for the validated body.
type ctxKeyValue struct{}

// ContextWithValue attaches a validated body to the context.
func ContextWithValue(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, v)
}

// ValueFromContext retrieves the validated body stored by ValidateJSON.
func ValueFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyValue{})
	if v == nil {
		return nil, false
	}
	return v, true
}

// DefaultParseOpt returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Bodies are capped at 1 MiB
// - Nesting is capped at 64 levels
func DefaultParseOpt() goshape.ParseOpt {
	return goshape.ParseOpt{
		Strictness: goshape.Strictness{OnDuplicateKey: goshape.Error},
		MaxBytes:   1 << 20,
		MaxDepth:   64,
	}
}

// Observer receives the outcome of each validation, e.g. metrics.Collector.Observe.
type Observer func(schema string, d time.Duration, err error)

// Options configures ValidateJSON. The zero value uses DefaultParseOpt and a
// no-op logger.
type Options struct {
	Name     string // Schema name used in logs and observations.
	ParseOpt *goshape.ParseOpt
	Logger   *zerolog.Logger
	Observe  Observer
}

// ValidateJSON parses the request body via schema s and stores the output in
// the request context on success. Validation failures get a 400 response
// with the issue list.
func ValidateJSON(s goshape.Schema, opts Options) func(http.Handler) http.Handler {
	popt := DefaultParseOpt()
	if opts.ParseOpt != nil {
		popt = *opts.ParseOpt
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			out, err := goshape.ParseFrom(r.Context(), s, goshape.JSONReader(r.Body), popt)
			if opts.Observe != nil {
				opts.Observe(opts.Name, time.Since(start), err)
			}
			if err != nil {
				iss, ok := goshape.AsIssues(err)
				if !ok {
					logger.Error().Err(err).Str("schema", opts.Name).Msg("request validation failed")
					WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
					return
				}
				logger.Debug().
					Str("schema", opts.Name).
					Int("issues", len(iss)).
					Strs("codes", iss.Codes()).
					Msg("request rejected")
				WriteJSON(w, http.StatusBadRequest, ErrorPayload(iss))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), out)))
		})
	}
}

// IssueJSON is the wire shape of one issue.
type IssueJSON struct {
	Path     string         `json:"path"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Params   map[string]any `json:"params,omitempty"`
	Branches [][]IssueJSON  `json:"branches,omitempty"`
}

// Payload is the 400 response body.
type Payload struct {
	Issues []IssueJSON `json:"issues"`
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(iss goshape.Issues) Payload {
	return Payload{Issues: toJSON(iss)}
}

func toJSON(iss goshape.Issues) []IssueJSON {
	out := make([]IssueJSON, len(iss))
	for i, it := range iss {
		out[i] = IssueJSON{Path: it.Pointer(), Code: it.Code, Message: it.Message, Params: it.Params}
		for _, br := range it.Branches {
			out[i].Branches = append(out[i].Branches, toJSON(br))
		}
	}
	return out
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
