package jsonschema

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	sjs "github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator validates decoded values against a compiled JSON Schema document.
type Validator struct {
	compiled *sjs.Schema
}

// Marshal renders s as a root document, adding $schema when missing.
func Marshal(s *Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("jsonschema: nil schema")
	}
	root := *s
	if root.SchemaURI == "" {
		root.SchemaURI = Draft2020
	}
	return json.MarshalIndent(&root, "", "  ")
}

// Compile checks that s is a well-formed draft 2020-12 document and returns a
// Validator for it.
func Compile(s *Schema) (*Validator, error) {
	doc, err := Marshal(s)
	if err != nil {
		return nil, err
	}
	return CompileBytes(doc)
}

// CompileBytes compiles a raw JSON Schema document.
func CompileBytes(doc []byte) (*Validator, error) {
	const url = "mem://goshape/schema.json"
	c := sjs.NewCompiler()
	c.Draft = sjs.Draft2020
	if err := c.AddResource(url, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("jsonschema: add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: compile: %w", err)
	}
	return &Validator{compiled: compiled}, nil
}

// Validate checks v. The value is normalized through a JSON round trip so
// Go-native numbers and maps are accepted.
func (v *Validator) Validate(value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("jsonschema: marshal value: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("jsonschema: decode value: %w", err)
	}
	return v.compiled.Validate(doc)
}
