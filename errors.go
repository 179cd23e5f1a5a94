package goshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired                  = "required_field_missing"
	CodeUnexpectedNull            = "unexpected_null"
	CodeTypeMismatch              = "type_mismatch"
	CodeTooSmall                  = "too_small"
	CodeTooLarge                  = "too_large"
	CodeInvalidLength             = "invalid_length"
	CodeUnrecognizedKey           = "unrecognized_key"
	CodeUnrecognizedDiscriminator = "unrecognized_discriminator"
	CodeNoUnionBranch             = "no_union_branch_matched"
	CodeCustom                    = "custom_refinement_failed"
	// String formats and number shape
	CodeInvalidFormat = "invalid_format"
	CodeNotMultipleOf = "not_multiple_of"
	CodeNotFinite     = "not_finite"
	// Input decoding (ParseFrom)
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTooDeep      = "too_deep"
	// Refinements that need a service from the context
	CodeDependencyUnavailable = "dependency_unavailable"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    Path   // Location of the offending value; empty means the root.
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"minimum":1, "received":"string"})
	// for i18n and custom formatters.
	Params map[string]any
	// Branches holds the issues of each union branch for no_union_branch_matched.
	Branches []Issues
}

// Pointer returns the issue location as an RFC 6901 JSON Pointer.
func (it Issue) Pointer() string { return it.Path.Pointer() }

// Issues is a collection of validation errors that implements error. Parse
// returns it as the error value, so it is the engine's ValidationError.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. too_large at /age
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path.Pointer())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
