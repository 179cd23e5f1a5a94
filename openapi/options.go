package openapi

import "fmt"

// UnknownBehavior configures how unknown fields are treated for objects that
// do not declare additionalProperties.
type UnknownBehavior int

const (
	UnknownPrune UnknownBehavior = iota
	UnknownStrict
	UnknownPreserve
)

// DefaultMode controls how defaults from the document are applied.
type DefaultMode int

const (
	DefaultApply DefaultMode = iota
	DefaultIgnore
)

// Options controls import behavior.
type Options struct {
	Unknown     UnknownBehavior
	DefaultMode DefaultMode
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
