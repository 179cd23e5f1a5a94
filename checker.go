package goshape

import (
	"context"

	"github.com/reoring/goshape/i18n"
)

// Checker carries the state of one validation call: the context handed to
// refinements, the path of the node being checked and the issues collected so
// far. A Checker belongs to a single call and must not be shared.
type Checker struct {
	ctx    context.Context
	path   Path
	issues Issues
}

// NewChecker returns a Checker rooted at the empty path.
func NewChecker(ctx context.Context) *Checker {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Checker{ctx: ctx}
}

// Context returns the context of the current call.
func (c *Checker) Context() context.Context { return c.ctx }

// Path returns a copy of the current path.
func (c *Checker) Path() Path { return c.path.Append() }

// Issues returns the issues collected so far, in traversal order.
func (c *Checker) Issues() Issues { return c.issues }

// Len reports how many issues have been collected.
func (c *Checker) Len() int { return len(c.issues) }

// Report records an issue at the current path. An empty message is resolved
// through the i18n translator using code and params.
func (c *Checker) Report(code string, params map[string]any, message string) {
	c.ReportAt(nil, code, params, message)
}

// ReportAt records an issue at the current path extended by rel.
func (c *Checker) ReportAt(rel Path, code string, params map[string]any, message string) {
	if message == "" {
		message = i18n.T(code, params)
	}
	c.issues = append(c.issues, Issue{Path: c.path.Append(rel...), Code: code, Message: message, Params: params})
}

// Add records pre-built issues, rebasing their paths under the current path.
func (c *Checker) Add(iss ...Issue) {
	for _, it := range iss {
		it.Path = c.path.Append(it.Path...)
		if it.Message == "" {
			it.Message = i18n.T(it.Code, it.Params)
		}
		c.issues = append(c.issues, it)
	}
}

// Child checks v against s with the path extended by seg.
func (c *Checker) Child(seg Segment, s Schema, v any) (any, bool) {
	c.path = append(c.path, seg)
	out, ok := s.Check(c, v)
	c.path = c.path[:len(c.path)-1]
	return out, ok
}

// Fork returns a Checker at the same path with an empty issue list. It is used
// to try a union branch without committing its issues.
func (c *Checker) Fork() *Checker {
	return &Checker{ctx: c.ctx, path: c.path.Append()}
}

// Absorb appends the issues collected by a fork.
func (c *Checker) Absorb(f *Checker) {
	c.issues = append(c.issues, f.issues...)
}
