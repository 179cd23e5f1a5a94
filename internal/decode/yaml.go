package decode

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML decodes a single YAML document into untyped values with string map
// keys. Duplicate mapping keys are reported as problems (the last occurrence
// wins) instead of failing the whole document.
func YAML(data []byte) (any, []Problem, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind == 0 {
		// empty document
		return nil, nil, nil
	}
	var problems []Problem
	v, err := fromNode(&doc, nil, &problems)
	if err != nil {
		return nil, nil, err
	}
	return v, problems, nil
}

func fromNode(n *yaml.Node, path []any, problems *[]Problem) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0], path, problems)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, errors.New("decode yaml: dangling alias")
		}
		return fromNode(n.Alias, path, problems)
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			if kn.Tag == "!!merge" {
				merged, err := fromNode(vn, path, problems)
				if err != nil {
					return nil, err
				}
				if m, ok := merged.(map[string]any); ok {
					for k, v := range m {
						if _, exists := out[k]; !exists {
							out[k] = v
						}
					}
				}
				continue
			}
			key, err := scalarKey(kn)
			if err != nil {
				return nil, err
			}
			if _, dup := out[key]; dup {
				*problems = append(*problems, Problem{
					Code:    CodeDuplicateKey,
					Path:    appendPath(path, key),
					Message: "key '" + key + "' duplicated",
				})
			}
			v, err := fromNode(vn, appendPath(path, key), problems)
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := fromNode(c, appendPath(path, i), problems)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode yaml scalar at line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("decode yaml: unsupported node kind %d", n.Kind)
}

func scalarKey(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("decode yaml: non-scalar mapping key at line %d", n.Line)
	}
	return n.Value, nil
}
