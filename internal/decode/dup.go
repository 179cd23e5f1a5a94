package decode

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"io"
	"sort"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         []any
	nextIndex    int
	pendingKey   string
}

// JSONDuplicateKeys scans data token by token and reports every object key
// that appears more than once in the same object. Decoding keeps the last
// occurrence, so the scan is the only place duplicates are visible.
func JSONDuplicateKeys(data []byte) ([]Problem, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		out   []Problem
		stack []dupFrame
	)

	// path of the value the next token starts
	valuePath := func() []any {
		if len(stack) == 0 {
			return nil
		}
		top := &stack[len(stack)-1]
		if top.kind == kindObject {
			return appendPath(top.path, top.pendingKey)
		}
		p := appendPath(top.path, top.nextIndex)
		top.nextIndex++
		return p
	}
	// a scalar or a closed container completes the pending value
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if len(stack) > 0 {
				return out, fmt.Errorf("scan json: %w", io.ErrUnexpectedEOF)
			}
			break
		}
		if err != nil {
			return out, fmt.Errorf("scan json: %w", err)
		}

		switch v := tok.(type) {
		case stdjson.Delim:
			switch v {
			case '{':
				p := valuePath()
				stack = append(stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: p})
			case '[':
				p := valuePath()
				stack = append(stack, dupFrame{kind: kindArray, path: p})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					if _, ok := top.keys[v]; ok {
						out = append(out, Problem{
							Code:    CodeDuplicateKey,
							Path:    appendPath(top.path, v),
							Message: "key '" + v + "' duplicated",
						})
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					top.pendingKey = v
					continue
				}
			}
			valuePath()
			valueDone()
		default:
			valuePath()
			valueDone()
		}
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
