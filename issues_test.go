package vschema_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vschema"
)

func TestFlatten_Codes(t *testing.T) {
	schema := vschema.Object{
		"a": vschema.Int(true),
		"b": vschema.Any("x", "y"),
		"c": vschema.Type[string](),
		"d": func() {},
		"e": vschema.Validator(func(any, string) (any, error) { return nil, errors.New("custom") }, "Custom"),
	}
	_, err := vschema.Validate(schema, map[string]any{"a": "z", "b": "q", "c": 1, "d": 1, "e": 1})
	iss := vschema.Flatten(err)
	require.Len(t, iss, 5)

	codes := map[string]string{}
	for _, it := range iss {
		codes[it.Path] = it.Code
	}
	assert.Equal(t, map[string]string{
		".a": vschema.CodeConversion,
		".b": vschema.CodeNotMatchAny,
		".c": vschema.CodeAssertion,
		".d": vschema.CodeUnknownSchema,
		".e": vschema.CodeCustom,
	}, codes)

	assert.Equal(t, "toInt", iss[0].Params["converter"])
	assert.Equal(t, 2, iss[1].Params["options"])
	assert.Equal(t, "isSameTypeName", iss[2].Params["assertion"])
	assert.Equal(t, "Custom", iss[4].Rule)
	assert.True(t, iss.Has(".e"))
	assert.False(t, iss.Has(".f"))
}

func TestFlatten_Nil(t *testing.T) {
	assert.Nil(t, vschema.Flatten(nil))
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := vschema.Issues{
		{Path: ".a", Code: vschema.CodeAssertion},
		{Path: "", Code: vschema.CodeConversion},
		{Path: ".c", Code: vschema.CodeCustom},
		{Path: ".d", Code: vschema.CodeCustom},
	}
	assert.Equal(t,
		"assertion_failed at .a; conversion_failed at (root); custom_failed at .c; ... (total 4)",
		iss.Error())
	assert.Equal(t, "", vschema.Issues{}.Error())
}

func TestAsIssues(t *testing.T) {
	iss := vschema.Issues{vschema.IssueAt(vschema.RootPath("").Field("a").Index(2), vschema.CodeCustom, "bad", nil)}
	wrapped := fmt.Errorf("request: %w", iss)

	got, ok := vschema.AsIssues(wrapped)
	require.True(t, ok)
	assert.Equal(t, ".a[2]", got[0].Path)
	assert.Equal(t, "/a/2", got[0].Pointer)

	_, ok = vschema.AsIssues(errors.New("x"))
	assert.False(t, ok)
}

func TestCustomValidator_ReturningIssues(t *testing.T) {
	v := vschema.Validator(func(in any, path string) (any, error) {
		return nil, vschema.Issues{{Path: path + ".inner", Code: vschema.CodeCustom, Message: "inner failed"}}
	}, "Nested")
	_, err := vschema.Validate(vschema.Object{"x": v}, map[string]any{"x": 1})
	iss := vschema.Flatten(err)
	require.Len(t, iss, 1)
	assert.Equal(t, ".x.inner", iss[0].Path)
}
