package openapi

import (
	"fmt"
	"strconv"
	"strings"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

// ref compiles the schema behind a local reference once. The result is a
// lazy schema so cyclic references resolve at validation time.
func (im *importer) ref(ref, at string) (goshape.Schema, error) {
	if s, ok := im.refs[ref]; ok {
		return s, nil
	}
	target, err := im.resolve(ref)
	if err != nil {
		im.d.warnf("%s: %v (treated as any)", at, err)
		return dsl.Any(), nil
	}
	var built goshape.Schema
	lazy := dsl.Lazy(func() goshape.Schema { return built })
	im.refs[ref] = lazy
	s, err := im.schema(target, ref)
	if err != nil {
		delete(im.refs, ref)
		return nil, err
	}
	built = s
	return lazy, nil
}

// resolve walks a local JSON Pointer reference ("#/components/schemas/Pet").
func (im *importer) resolve(ref string) (map[string]any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("$ref %q not supported (local references only)", ref)
	}
	var cur any = im.root
	for _, tok := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		tok = unescapeToken(tok)
		switch t := cur.(type) {
		case map[string]any:
			next, ok := t[tok]
			if !ok {
				return nil, fmt.Errorf("$ref %q does not resolve", ref)
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(t) {
				return nil, fmt.Errorf("$ref %q does not resolve", ref)
			}
			cur = t[i]
		default:
			return nil, fmt.Errorf("$ref %q does not resolve", ref)
		}
	}
	m, ok := cur.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("$ref %q is not a schema", ref)
	}
	return m, nil
}

func escapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

func unescapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}
