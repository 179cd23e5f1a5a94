package openapi

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNoSchema is returned when a document holds no importable schema.
var ErrNoSchema = errors.New("openapi: no schema found")

// loadDocument accepts a decoded map or raw JSON/YAML bytes. JSON is a subset
// of YAML, so one decoder serves both.
func loadDocument(doc any) (map[string]any, error) {
	switch t := doc.(type) {
	case nil:
		return nil, errors.New("openapi: nil document")
	case map[string]any:
		return t, nil
	case []byte:
		var v any
		if err := yaml.Unmarshal(t, &v); err != nil {
			return nil, fmt.Errorf("openapi: decode document: %w", err)
		}
		m := yamlAnyToStringMap(v)
		if m == nil {
			return nil, fmt.Errorf("openapi: document root must be a mapping")
		}
		return m, nil
	case string:
		return loadDocument([]byte(t))
	default:
		return nil, fmt.Errorf("openapi: unsupported document type %T", doc)
	}
}

// rootSchema picks the schema to import from a document: a bare schema, an
// openAPIV3Schema wrapper or a Kubernetes CRD.
func rootSchema(root map[string]any) map[string]any {
	if spec, ok := root["openAPIV3Schema"].(map[string]any); ok {
		return spec
	}
	if unwrapped := unwrapCRDSchema(root); unwrapped != nil {
		return unwrapped
	}
	return root
}

// namedSchemas returns the reusable schemas of a document together with the
// JSON Pointer prefix they live under.
func namedSchemas(root map[string]any) (map[string]any, string) {
	if comps, ok := root["components"].(map[string]any); ok {
		if m, ok := comps["schemas"].(map[string]any); ok {
			return m, "#/components/schemas/"
		}
	}
	if m, ok := root["$defs"].(map[string]any); ok {
		return m, "#/$defs/"
	}
	if m, ok := root["definitions"].(map[string]any); ok {
		return m, "#/definitions/"
	}
	return nil, ""
}

// unwrapCRDSchema tries to extract openAPIV3Schema from a Kubernetes CRD document.
// It looks for spec.versions[].schema.openAPIV3Schema (preferring served=true),
// then falls back to spec.validation.openAPIV3Schema for legacy specs.
func unwrapCRDSchema(root map[string]any) map[string]any {
	spec, ok := root["spec"].(map[string]any)
	if !ok {
		return nil
	}
	if vers, ok := spec["versions"].([]any); ok {
		var firstFound map[string]any
		for _, v := range vers {
			vm, _ := v.(map[string]any)
			if vm == nil {
				continue
			}
			served := true
			if sv, ok := vm["served"].(bool); ok {
				served = sv
			}
			sch, _ := vm["schema"].(map[string]any)
			oas, ok := sch["openAPIV3Schema"].(map[string]any)
			if !ok {
				continue
			}
			if served {
				return oas
			}
			if firstFound == nil {
				firstFound = oas
			}
		}
		if firstFound != nil {
			return firstFound
		}
	}
	// legacy: spec.validation.openAPIV3Schema
	if val, ok := spec["validation"].(map[string]any); ok {
		if oas, ok := val["openAPIV3Schema"].(map[string]any); ok {
			return oas
		}
	}
	return nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
