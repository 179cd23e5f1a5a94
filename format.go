package goshape

import (
	"strings"
)

// Formatter renders an issue list as a single display string. It only reads
// the exported Issue fields, so alternative renderers can be swapped in.
type Formatter interface {
	Format(iss Issues) string
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(Issues) string

func (f FormatterFunc) Format(iss Issues) string { return f(iss) }

// DefaultFormatter renders one line per issue as "path: message". Root issues
// have no path prefix. Union issues list their branches indented below.
var DefaultFormatter Formatter = FormatterFunc(formatIssues)

// Format renders issues with DefaultFormatter.
func Format(iss Issues) string { return DefaultFormatter.Format(iss) }

func formatIssues(iss Issues) string {
	b := &strings.Builder{}
	writeIssues(b, iss, "")
	return strings.TrimRight(b.String(), "\n")
}

func writeIssues(b *strings.Builder, iss Issues, indent string) {
	for _, it := range iss {
		b.WriteString(indent)
		if len(it.Path) > 0 {
			b.WriteString(it.Path.String())
			b.WriteString(": ")
		}
		b.WriteString(it.Message)
		b.WriteByte('\n')
		for i, br := range it.Branches {
			b.WriteString(indent)
			b.WriteString("  branch ")
			b.WriteString(Index(i).String())
			b.WriteString(":\n")
			writeIssues(b, br, indent+"    ")
		}
	}
}

// FlattenedError groups messages by top-level field. Root-level issues go to
// FormErrors.
type FlattenedError struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// Flatten groups issue messages by the first path segment.
func Flatten(iss Issues) FlattenedError {
	out := FlattenedError{FormErrors: []string{}, FieldErrors: map[string][]string{}}
	for _, it := range iss {
		if len(it.Path) == 0 {
			out.FormErrors = append(out.FormErrors, it.Message)
			continue
		}
		k := it.Path[0].String()
		out.FieldErrors[k] = append(out.FieldErrors[k], it.Message)
	}
	return out
}
