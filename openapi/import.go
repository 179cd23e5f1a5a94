// Package openapi imports OpenAPI 3 and JSON Schema documents into dsl
// schemas. Documents may be decoded maps or raw JSON/YAML bytes; Kubernetes
// CRDs are unwrapped to their openAPIV3Schema.
//
// Supported keywords: type (including type arrays with "null"), nullable,
// properties, required, additionalProperties, x-kubernetes-preserve-unknown-fields,
// x-kubernetes-int-or-string, enum, const, default, description, minLength,
// maxLength, pattern, format (email, uri, uuid, date-time), minimum, maximum,
// exclusiveMinimum, exclusiveMaximum, multipleOf, items, prefixItems, minItems,
// maxItems, uniqueItems, oneOf, anyOf, allOf (objects), discriminator and
// local $ref. Anything else is reported through Diag.
package openapi

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

// Import compiles the root schema of doc.
func Import(doc any, opts Options) (goshape.Schema, Diag, error) {
	d := &simpleDiag{}
	root, err := loadDocument(doc)
	if err != nil {
		return nil, d, err
	}
	im := newImporter(root, opts, d)
	s, err := im.schema(rootSchema(root), "#")
	if err != nil {
		return nil, d, err
	}
	return s, d, nil
}

// ImportComponents compiles every named schema of doc (components.schemas,
// $defs or definitions), keyed by name. References between them are shared.
func ImportComponents(doc any, opts Options) (map[string]goshape.Schema, Diag, error) {
	d := &simpleDiag{}
	root, err := loadDocument(doc)
	if err != nil {
		return nil, d, err
	}
	named, prefix := namedSchemas(root)
	if len(named) == 0 {
		return nil, d, ErrNoSchema
	}
	im := newImporter(root, opts, d)
	out := make(map[string]goshape.Schema, len(named))
	for _, name := range sortedKeys(named) {
		s, err := im.ref(prefix+escapeToken(name), "#")
		if err != nil {
			return nil, d, err
		}
		out[name] = s
	}
	return out, d, nil
}

type importer struct {
	root map[string]any
	opts Options
	d    *simpleDiag
	refs map[string]goshape.Schema
}

func newImporter(root map[string]any, opts Options, d *simpleDiag) *importer {
	return &importer{root: root, opts: opts, d: d, refs: map[string]goshape.Schema{}}
}

// schema dispatches on the keywords of n. at is the JSON Pointer of n inside
// the document, used in errors and warnings.
func (im *importer) schema(n map[string]any, at string) (goshape.Schema, error) {
	if n == nil {
		return dsl.Any(), nil
	}
	if ref, ok := n["$ref"].(string); ok {
		return im.ref(ref, at)
	}
	s, err := im.body(n, at)
	if err != nil {
		return nil, err
	}
	return im.modifiers(s, n), nil
}

func (im *importer) body(n map[string]any, at string) (goshape.Schema, error) {
	if v, ok := n["const"]; ok {
		return dsl.Literal(normalizeLiteral(v)), nil
	}
	if vals, ok := n["enum"].([]any); ok {
		return im.enum(vals, at)
	}
	if _, ok := n["oneOf"]; ok {
		return im.union(n, "oneOf", at)
	}
	if _, ok := n["anyOf"]; ok {
		return im.union(n, "anyOf", at)
	}
	if _, ok := n["allOf"]; ok {
		return im.allOf(n, at)
	}
	if b, _ := n["x-kubernetes-int-or-string"].(bool); b {
		return dsl.Union(dsl.Number().Int(), dsl.String()), nil
	}
	switch typ, _ := schemaType(n); typ {
	case "string":
		return im.str(n, at)
	case "integer":
		return im.number(n, true), nil
	case "number":
		return im.number(n, false), nil
	case "boolean":
		return dsl.Boolean(), nil
	case "array":
		return im.array(n, at)
	case "object":
		return im.object(n, at)
	case "null":
		return dsl.Literal(nil), nil
	case "":
		if _, ok := n["properties"]; ok {
			return im.object(n, at)
		}
		if _, ok := n["items"]; ok {
			return im.array(n, at)
		}
		return dsl.Any(), nil
	default:
		im.d.warnf("%s: unsupported type %q treated as any", at, typ)
		return dsl.Any(), nil
	}
}

// modifiers applies the keywords shared by every schema: nullability,
// description and default.
func (im *importer) modifiers(s goshape.Schema, n map[string]any) goshape.Schema {
	if _, nullable := schemaType(n); nullable || n["nullable"] == true {
		s = dsl.Nullable(s)
	}
	if desc, ok := n["description"].(string); ok && desc != "" {
		s = dsl.Describe(s, desc)
	}
	if def, ok := n["default"]; ok && im.opts.DefaultMode == DefaultApply {
		s = dsl.WithDefault(s, normalizeLiteral(def))
	}
	return s
}

// schemaType returns the non-null type of n and whether "null" was listed in
// a type array.
func schemaType(n map[string]any) (string, bool) {
	switch t := n["type"].(type) {
	case string:
		return t, false
	case []any:
		typ, nullable := "", false
		for _, e := range t {
			s, _ := e.(string)
			if s == "null" {
				nullable = true
				continue
			}
			if typ == "" {
				typ = s
			}
		}
		if typ == "" && nullable {
			return "null", false
		}
		return typ, nullable
	}
	return "", false
}

func (im *importer) enum(vals []any, at string) (goshape.Schema, error) {
	if len(vals) == 0 {
		return nil, fmt.Errorf("openapi: %s: empty enum", at)
	}
	strs := make([]string, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			break
		}
		strs = append(strs, s)
	}
	if len(strs) == len(vals) {
		return dsl.Enum(strs...), nil
	}
	if len(vals) == 1 {
		return dsl.Literal(normalizeLiteral(vals[0])), nil
	}
	lits := make([]goshape.Schema, len(vals))
	for i, v := range vals {
		lits[i] = dsl.Literal(normalizeLiteral(v))
	}
	return dsl.Union(lits...), nil
}

func (im *importer) str(n map[string]any, at string) (goshape.Schema, error) {
	s := dsl.String()
	if v, ok := intValue(n["minLength"]); ok {
		s = s.Min(v)
	}
	if v, ok := intValue(n["maxLength"]); ok {
		s = s.Max(v)
	}
	if p, ok := n["pattern"].(string); ok {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("openapi: %s: pattern: %w", at, err)
		}
		s = s.Regex(re)
	}
	switch f, _ := n["format"].(string); f {
	case "":
	case "email":
		s = s.Email()
	case "uri", "url":
		s = s.URL()
	case "uuid":
		s = s.UUID()
	case "date-time":
		s = s.Datetime()
	default:
		im.d.warnf("%s: format %q is not checked", at, f)
	}
	return s, nil
}

func (im *importer) number(n map[string]any, integer bool) goshape.Schema {
	s := dsl.Number()
	if integer {
		s = s.Int()
	}
	// OpenAPI 3.0 uses boolean exclusive flags next to minimum/maximum; 3.1
	// uses numeric exclusiveMinimum/exclusiveMaximum.
	exMin, _ := n["exclusiveMinimum"].(bool)
	exMax, _ := n["exclusiveMaximum"].(bool)
	if v, ok := floatValue(n["minimum"]); ok {
		if exMin {
			s = s.Gt(v)
		} else {
			s = s.Gte(v)
		}
	}
	if v, ok := floatValue(n["exclusiveMinimum"]); ok {
		s = s.Gt(v)
	}
	if v, ok := floatValue(n["maximum"]); ok {
		if exMax {
			s = s.Lt(v)
		} else {
			s = s.Lte(v)
		}
	}
	if v, ok := floatValue(n["exclusiveMaximum"]); ok {
		s = s.Lt(v)
	}
	if v, ok := floatValue(n["multipleOf"]); ok && v > 0 {
		s = s.MultipleOf(v)
	}
	return s
}

func (im *importer) array(n map[string]any, at string) (goshape.Schema, error) {
	if prefix, ok := n["prefixItems"].([]any); ok {
		items := make([]goshape.Schema, len(prefix))
		for i, raw := range prefix {
			s, err := im.schema(asNode(raw), fmt.Sprintf("%s/prefixItems/%d", at, i))
			if err != nil {
				return nil, err
			}
			items[i] = s
		}
		t := dsl.Tuple(items...)
		if rest, ok := n["items"].(map[string]any); ok {
			rs, err := im.schema(rest, at+"/items")
			if err != nil {
				return nil, err
			}
			t = t.Rest(rs)
		}
		return t, nil
	}
	elem, err := im.schema(asNode(n["items"]), at+"/items")
	if err != nil {
		return nil, err
	}
	a := dsl.Array(elem)
	if v, ok := intValue(n["minItems"]); ok {
		a = a.Min(v)
	}
	if v, ok := intValue(n["maxItems"]); ok {
		a = a.Max(v)
	}
	if u, _ := n["uniqueItems"].(bool); u {
		a = a.Refine(uniqueItems, "Array items must be unique")
	}
	return a, nil
}

func uniqueItems(items []any) bool {
	for i := range items {
		for j := 0; j < i; j++ {
			if reflect.DeepEqual(items[i], items[j]) {
				return false
			}
		}
	}
	return true
}

func (im *importer) object(n map[string]any, at string) (goshape.Schema, error) {
	props, _ := n["properties"].(map[string]any)
	if len(props) == 0 {
		if vs, ok := n["additionalProperties"].(map[string]any); ok {
			val, err := im.schema(vs, at+"/additionalProperties")
			if err != nil {
				return nil, err
			}
			return dsl.Record(val), nil
		}
	}
	return im.objectSchema(n, at)
}

func (im *importer) objectSchema(n map[string]any, at string) (*dsl.ObjectSchema, error) {
	props, _ := n["properties"].(map[string]any)
	required := map[string]bool{}
	for _, r := range stringList(n["required"]) {
		required[r] = true
	}
	o := dsl.Object()
	for _, name := range sortedKeys(props) {
		f, err := im.schema(asNode(props[name]), at+"/properties/"+escapeToken(name))
		if err != nil {
			return nil, err
		}
		if !required[name] {
			f = dsl.Optional(f)
		}
		o = o.Field(name, f)
	}
	for name := range required {
		if _, ok := props[name]; !ok {
			im.d.warnf("%s: required property %q is not declared", at, name)
		}
	}
	if _, ok := n["minProperties"]; ok {
		im.d.warnf("%s: minProperties is not checked", at)
	}
	if _, ok := n["maxProperties"]; ok {
		im.d.warnf("%s: maxProperties is not checked", at)
	}

	if keep, _ := n["x-kubernetes-preserve-unknown-fields"].(bool); keep {
		return o.Passthrough(), nil
	}
	switch ap := n["additionalProperties"].(type) {
	case bool:
		if ap {
			return o.Passthrough(), nil
		}
		return o.Strict(), nil
	case map[string]any:
		cs, err := im.schema(ap, at+"/additionalProperties")
		if err != nil {
			return nil, err
		}
		return o.Catchall(cs), nil
	}
	switch im.opts.Unknown {
	case UnknownStrict:
		return o.Strict(), nil
	case UnknownPreserve:
		return o.Passthrough(), nil
	default:
		return o, nil
	}
}

func (im *importer) allOf(n map[string]any, at string) (goshape.Schema, error) {
	members, _ := n["allOf"].([]any)
	var merged *dsl.ObjectSchema
	for i, raw := range members {
		o, err := im.objectMember(asNode(raw), fmt.Sprintf("%s/allOf/%d", at, i))
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = o
			continue
		}
		merged = merged.Merge(o)
	}
	if _, ok := n["properties"]; ok {
		o, err := im.objectSchema(n, at)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			return o, nil
		}
		merged = merged.Merge(o)
	}
	if merged == nil {
		return dsl.Any(), nil
	}
	return merged, nil
}

// objectMember resolves n (following $ref) to an object schema, or fails.
func (im *importer) objectMember(n map[string]any, at string) (*dsl.ObjectSchema, error) {
	if ref, ok := n["$ref"].(string); ok {
		target, err := im.resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("openapi: %s: %w", at, err)
		}
		return im.objectMember(target, ref)
	}
	if typ, _ := schemaType(n); typ != "" && typ != "object" {
		return nil, fmt.Errorf("openapi: %s: only object schemas can be composed, got %q", at, typ)
	}
	if _, ok := n["allOf"]; ok {
		s, err := im.allOf(n, at)
		if err != nil {
			return nil, err
		}
		if o, ok := s.(*dsl.ObjectSchema); ok {
			return o, nil
		}
		return dsl.Object(), nil
	}
	return im.objectSchema(n, at)
}

func (im *importer) union(n map[string]any, kw, at string) (goshape.Schema, error) {
	raw, _ := n[kw].([]any)
	if len(raw) == 0 {
		return nil, fmt.Errorf("openapi: %s: empty %s", at, kw)
	}
	if disc, ok := n["discriminator"].(map[string]any); ok {
		if prop, _ := disc["propertyName"].(string); prop != "" {
			return im.discriminated(raw, prop, disc, at+"/"+kw)
		}
	}
	branches := make([]goshape.Schema, len(raw))
	for i, r := range raw {
		s, err := im.schema(asNode(r), fmt.Sprintf("%s/%s/%d", at, kw, i))
		if err != nil {
			return nil, err
		}
		branches[i] = s
	}
	return dsl.Union(branches...), nil
}

// discriminated builds a DiscriminatedUnion. Branches whose discriminator
// property is not already a literal or enum get the value from the mapping,
// or the referenced schema name.
func (im *importer) discriminated(raw []any, prop string, disc map[string]any, at string) (goshape.Schema, error) {
	byRef := map[string]string{}
	if mapping, ok := disc["mapping"].(map[string]any); ok {
		for _, value := range sortedKeys(mapping) {
			if ref, ok := mapping[value].(string); ok {
				byRef[ref] = value
			}
		}
	}
	branches := make([]*dsl.ObjectSchema, len(raw))
	for i, r := range raw {
		node := asNode(r)
		o, err := im.objectMember(node, fmt.Sprintf("%s/%d", at, i))
		if err != nil {
			return nil, err
		}
		if f, ok := o.Get(prop); !ok || !isDiscriminatorKind(f.Kind()) {
			ref, _ := node["$ref"].(string)
			value, mapped := byRef[ref]
			if !mapped {
				if ref == "" {
					return nil, fmt.Errorf("openapi: %s/%d: branch has no value for discriminator %q", at, i, prop)
				}
				value = ref[strings.LastIndex(ref, "/")+1:]
			}
			o = o.Extend(dsl.Shape{prop: dsl.Literal(value)})
		}
		branches[i] = o
	}
	du, err := dsl.DiscriminatedUnion(prop, branches...)
	if err != nil {
		return nil, fmt.Errorf("openapi: %s: %w", at, err)
	}
	return du, nil
}

func isDiscriminatorKind(k goshape.Kind) bool {
	return k == goshape.KindLiteral || k == goshape.KindEnum || k == goshape.KindNativeEnum
}

// ------- value helpers -------

func asNode(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringList(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// normalizeLiteral converts decoded integers to float64 so literals compare
// equal to validated numbers.
func normalizeLiteral(v any) any {
	if f, ok := floatValue(v); ok {
		return f
	}
	return v
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float64:
		return t, true
	case interface{ Float64() (float64, error) }:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

func intValue(v any) (int, bool) {
	f, ok := floatValue(v)
	if !ok || f < 0 || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
