package openapi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/openapi"
)

func parse(t *testing.T, s goshape.Schema, v any) (any, goshape.Issues) {
	t.Helper()
	out, err := goshape.Parse(context.Background(), s, v)
	if err == nil {
		return out, nil
	}
	iss, ok := goshape.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	return nil, iss
}

func TestImport_ObjectRequiredStrict(t *testing.T) {
	doc := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 1},
			"age":  map[string]any{"type": "integer", "minimum": 0},
		},
		"required":             []any{"name"},
		"additionalProperties": false,
	}
	s, diag, err := openapi.Import(doc, openapi.Options{})
	require.NoError(t, err)
	assert.False(t, diag.HasWarnings())

	out, iss := parse(t, s, map[string]any{"name": "ok"})
	require.Nil(t, iss)
	assert.Equal(t, map[string]any{"name": "ok"}, out)

	_, iss = parse(t, s, map[string]any{"age": 1.5, "zzz": 1})
	require.NotNil(t, iss)
	assert.Equal(t, []string{goshape.CodeTypeMismatch, goshape.CodeRequired, goshape.CodeUnrecognizedKey}, iss.Codes())
	assert.Equal(t, "/", iss[2].Pointer())
	assert.Equal(t, "zzz", iss[2].Params["key"])
}

func TestImport_UnknownBehaviorOption(t *testing.T) {
	doc := map[string]any{"type": "object", "properties": map[string]any{"a": map[string]any{"type": "string"}}}
	in := map[string]any{"a": "x", "b": 1}

	s, _, err := openapi.Import(doc, openapi.Options{})
	require.NoError(t, err)
	out, _ := parse(t, s, in)
	assert.Equal(t, map[string]any{"a": "x"}, out)

	s, _, err = openapi.Import(doc, openapi.Options{Unknown: openapi.UnknownPreserve})
	require.NoError(t, err)
	out, _ = parse(t, s, in)
	assert.Equal(t, in, out)

	s, _, err = openapi.Import(doc, openapi.Options{Unknown: openapi.UnknownStrict})
	require.NoError(t, err)
	_, iss := parse(t, s, in)
	assert.Equal(t, []string{goshape.CodeUnrecognizedKey}, iss.Codes())
}

const petstore = `
openapi: 3.0.3
info: {title: pets, version: "1"}
paths: {}
components:
  schemas:
    Pet:
      oneOf:
        - $ref: '#/components/schemas/Cat'
        - $ref: '#/components/schemas/Dog'
      discriminator:
        propertyName: kind
        mapping:
          cat: '#/components/schemas/Cat'
    Cat:
      type: object
      required: [kind, lives]
      properties:
        kind: {type: string}
        lives: {type: integer, maximum: 9}
    Dog:
      type: object
      required: [kind]
      properties:
        kind: {type: string}
        tags:
          type: array
          items: {type: string}
          uniqueItems: true
        owner:
          $ref: '#/components/schemas/Owner'
    Owner:
      type: object
      nullable: true
      properties:
        email: {type: string, format: email}
        role: {type: string, enum: [admin, user], default: user}
        friend:
          $ref: '#/components/schemas/Owner'
`

func TestImportComponents_DiscriminatorAndRefs(t *testing.T) {
	schemas, _, err := openapi.ImportComponents([]byte(petstore), openapi.Options{})
	require.NoError(t, err)
	require.Contains(t, schemas, "Pet")
	pet := schemas["Pet"]

	out, iss := parse(t, pet, map[string]any{"kind": "cat", "lives": 3})
	require.Nil(t, iss)
	assert.Equal(t, map[string]any{"kind": "cat", "lives": 3.0}, out)

	_, iss = parse(t, pet, map[string]any{"kind": "Dog", "tags": []any{"a", "a"}})
	require.Len(t, iss, 1)
	assert.Equal(t, goshape.CodeCustom, iss[0].Code)
	assert.Equal(t, "/tags", iss[0].Pointer())

	_, iss = parse(t, pet, map[string]any{"kind": "bird"})
	require.Len(t, iss, 1)
	assert.Equal(t, goshape.CodeUnrecognizedDiscriminator, iss[0].Code)
	assert.Equal(t, "/kind", iss[0].Pointer())

	out, iss = parse(t, pet, map[string]any{
		"kind":  "Dog",
		"owner": map[string]any{"email": "a@b.io", "friend": map[string]any{"email": "c@d.io", "friend": nil}},
	})
	require.Nil(t, iss)
	owner := out.(map[string]any)["owner"].(map[string]any)
	assert.Equal(t, "user", owner["role"])
	assert.Equal(t, "user", owner["friend"].(map[string]any)["role"])

	_, iss = parse(t, pet, map[string]any{"kind": "Dog", "owner": map[string]any{"friend": map[string]any{"email": "bad"}}})
	require.Len(t, iss, 1)
	assert.Equal(t, "/owner/friend/email", iss[0].Pointer())
	assert.Equal(t, goshape.CodeInvalidFormat, iss[0].Code)
}

func TestImport_JSONSchemaKeywords(t *testing.T) {
	doc := []byte(`{
    "$defs": {"id": {"type": "string", "format": "uuid"}},
    "type": "object",
    "required": ["id", "point", "score", "labels", "note"],
    "properties": {
      "id": {"$ref": "#/$defs/id"},
      "point": {"type": "array", "prefixItems": [{"type": "number"}, {"type": "number"}], "minItems": 2},
      "score": {"type": "number", "exclusiveMinimum": 0, "maximum": 1, "multipleOf": 0.25},
      "labels": {"type": "object", "additionalProperties": {"type": "string"}},
      "note": {"type": ["string", "null"], "maxLength": 3},
      "level": {"enum": [1, 2, "max"]},
      "mode": {"const": "fast"}
    }
  }`)
	s, _, err := openapi.Import(doc, openapi.Options{})
	require.NoError(t, err)

	valid := map[string]any{
		"id":     "6a2f41a3-c54c-4d1e-8a8b-1c2b3d4e5f60",
		"point":  []any{1, 2},
		"score":  0.5,
		"labels": map[string]any{"a": "b"},
		"note":   nil,
		"level":  2,
		"mode":   "fast",
	}
	_, iss := parse(t, s, valid)
	require.Nil(t, iss)

	invalid := map[string]any{
		"id":     "nope",
		"point":  []any{1, "x"},
		"score":  0,
		"labels": map[string]any{"a": 1},
		"note":   "long",
		"level":  3,
		"mode":   "slow",
	}
	_, iss = parse(t, s, invalid)
	got := map[string]string{}
	for _, it := range iss {
		got[it.Pointer()] = it.Code
	}
	assert.Equal(t, map[string]string{
		"/id":       goshape.CodeInvalidFormat,
		"/point/1":  goshape.CodeTypeMismatch,
		"/score":    goshape.CodeTooSmall,
		"/labels/a": goshape.CodeTypeMismatch,
		"/note":     goshape.CodeTooLarge,
		"/level":    goshape.CodeNoUnionBranch,
		"/mode":     goshape.CodeTypeMismatch,
	}, got)
}

func TestImport_AllOfMergesObjects(t *testing.T) {
	doc := map[string]any{
		"$defs": map[string]any{
			"named": map[string]any{
				"type":       "object",
				"required":   []any{"name"},
				"properties": map[string]any{"name": map[string]any{"type": "string"}},
			},
		},
		"allOf": []any{
			map[string]any{"$ref": "#/$defs/named"},
			map[string]any{
				"type":       "object",
				"properties": map[string]any{"size": map[string]any{"type": "integer"}},
			},
		},
	}
	s, _, err := openapi.Import(doc, openapi.Options{})
	require.NoError(t, err)
	out, iss := parse(t, s, map[string]any{"name": "a", "size": 2})
	require.Nil(t, iss)
	assert.Equal(t, map[string]any{"name": "a", "size": 2.0}, out)

	_, iss = parse(t, s, map[string]any{"size": 2})
	assert.Equal(t, []string{goshape.CodeRequired}, iss.Codes())
}

func TestImport_NullInAnyOfAndEnum(t *testing.T) {
	cases := map[string]map[string]any{
		"anyOf": {"anyOf": []any{map[string]any{"type": "string"}, map[string]any{"type": "null"}}},
		"enum":  {"enum": []any{"a", nil}},
		"type":  {"type": []any{"string", "null"}},
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s, _, err := openapi.Import(doc, openapi.Options{})
			require.NoError(t, err)

			out, iss := parse(t, s, nil)
			require.Nil(t, iss)
			assert.Nil(t, out)

			out, iss = parse(t, s, "a")
			require.Nil(t, iss)
			assert.Equal(t, "a", out)

			_, iss = parse(t, s, 1)
			require.NotNil(t, iss)
		})
	}
}

func TestImport_CRDAndWarnings(t *testing.T) {
	crd := []byte(`
apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
metadata: {name: widgets.example.com}
spec:
  versions:
    - name: v1
      served: true
      schema:
        openAPIV3Schema:
          type: object
          properties:
            spec:
              type: object
              x-kubernetes-preserve-unknown-fields: true
              properties:
                port: {x-kubernetes-int-or-string: true}
                host: {type: string, format: hostname}
                ref: {$ref: 'http://example.com/schema.json'}
`)
	s, diag, err := openapi.Import(crd, openapi.Options{})
	require.NoError(t, err)
	assert.Len(t, diag.Warnings(), 2)

	in := map[string]any{"spec": map[string]any{"port": "http", "host": "h", "extra": true}}
	out, iss := parse(t, s, in)
	require.Nil(t, iss)
	assert.Equal(t, in, out)

	_, iss = parse(t, s, map[string]any{"spec": map[string]any{"port": 1.5}})
	assert.Equal(t, []string{goshape.CodeNoUnionBranch}, iss.Codes())
}

func TestImport_Errors(t *testing.T) {
	_, _, err := openapi.Import(nil, openapi.Options{})
	assert.Error(t, err)

	_, _, err = openapi.Import([]byte("- a\n- b\n"), openapi.Options{})
	assert.Error(t, err)

	_, _, err = openapi.Import(map[string]any{"type": "string", "pattern": "("}, openapi.Options{})
	assert.Error(t, err)

	_, _, err = openapi.ImportComponents(map[string]any{"type": "object"}, openapi.Options{})
	assert.ErrorIs(t, err, openapi.ErrNoSchema)
}
