package goshape

// UnknownPolicy controls how unknown object keys are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys (default).
	UnknownStrict                           // Reject every unknown key with an issue.
	UnknownPassthrough                      // Keep unknown keys verbatim in the output.
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownStrict:
		return "strict"
	case UnknownPassthrough:
		return "passthrough"
	default:
		return "strip"
	}
}

// Kind identifies the validation rule a schema node implements. It is fixed at
// construction time.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindBigInt
	KindDate
	KindLiteral
	KindEnum
	KindNativeEnum
	KindObject
	KindArray
	KindTuple
	KindUnion
	KindDiscriminatedUnion
	KindRecord
	KindMap
	KindSet
	KindLazy
)

var kindNames = [...]string{
	KindAny:                "any",
	KindString:             "string",
	KindNumber:             "number",
	KindBoolean:            "boolean",
	KindBigInt:             "bigint",
	KindDate:               "date",
	KindLiteral:            "literal",
	KindEnum:               "enum",
	KindNativeEnum:         "native_enum",
	KindObject:             "object",
	KindArray:              "array",
	KindTuple:              "tuple",
	KindUnion:              "union",
	KindDiscriminatedUnion: "discriminated_union",
	KindRecord:             "record",
	KindMap:                "map",
	KindSet:                "set",
	KindLazy:               "lazy",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks an absent value. Pass it to Parse to validate "no input", and
// store it in a map entry to mean the key was not provided. Schemas return it
// as the output of an optional node whose input was absent.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Severity expresses how strictly an input condition is enforced.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement applied while decoding a Source.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn (dropped silently) or Error (duplicate_key issues).
}

// ParseOpt bundles options for ParseFrom.
type ParseOpt struct {
	Strictness Strictness
	// MaxDepth bounds container nesting in the decoded input (0 = unlimited).
	MaxDepth int
	// MaxBytes caps the input size for reader sources (0 = unlimited).
	MaxBytes int64
}
