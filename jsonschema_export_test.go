package vschema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vschema"
	js "github.com/reoring/vschema/jsonschema"
)

func TestJSONSchema_Object(t *testing.T) {
	one := 1.0
	schema := vschema.Object{
		"id":     vschema.ID(),
		"tags":   vschema.Array{vschema.Type[string]()},
		"email":  vschema.Optional(vschema.Email()),
		"parent": vschema.Nullable(vschema.Primitive(vschema.CategoryNumber)),
		"kind":   vschema.Any("user", "admin"),
		"at":     vschema.All(vschema.DateTime(), vschema.Iso8601(true)),
		"extra":  vschema.Validator(func(in any, _ string) (any, error) { return in, nil }),
		"mixed":  []any{vschema.Int(), "n/a"},
	}
	got, err := vschema.JSONSchema(schema)
	require.NoError(t, err)

	want := &js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			"id":     {Type: "integer", Minimum: &one},
			"tags":   {Type: "array", Items: &js.Schema{Type: "string"}},
			"email":  {Type: "string", Format: "email"},
			"parent": {AnyOf: []*js.Schema{{Type: "number"}, {Type: "null"}}},
			"kind":   {AnyOf: []*js.Schema{{Enum: []any{"user"}}, {Enum: []any{"admin"}}}},
			"at":     {AllOf: []*js.Schema{{Type: "string", Format: "date-time"}, {Type: "string", Format: "date-time"}}},
			"extra":  {},
			"mixed":  {Type: "array", Items: &js.Schema{AnyOf: []*js.Schema{{Type: "integer"}, {Enum: []any{"n/a"}}}}},
		},
		Required: []string{"at", "extra", "id", "kind", "mixed", "parent", "tags"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONSchema_NoJSONForm(t *testing.T) {
	for _, s := range []any{vschema.NewSymbol("s"), vschema.Undefined, func() {}, vschema.Primitive(vschema.CategorySymbol)} {
		_, err := vschema.JSONSchema(s)
		if !errors.Is(err, vschema.ErrInvalidSchema) {
			t.Fatalf("%T: want ErrInvalidSchema, got %v", s, err)
		}
	}
}
