package vschema_test

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vschema"
)

func TestPredicates(t *testing.T) {
	re := regexp.MustCompile(`^a+$`)
	cases := []struct {
		name string
		err  error
		ok   bool
	}{
		{"string", vschema.IsString("x"), true},
		{"string/int", vschema.IsString(1), false},
		{"number/int", vschema.IsNumber(1), true},
		{"number/json", vschema.IsNumber(json.Number("1.5")), true},
		{"number/nan", vschema.IsNumber(math.NaN()), false},
		{"number/string", vschema.IsNumber("1"), false},
		{"int/float", vschema.IsInt(2.0), true},
		{"int/fraction", vschema.IsInt(2.5), false},
		{"boolean", vschema.IsBoolean(false), true},
		{"symbol", vschema.IsSymbol(vschema.NewSymbol("s")), true},
		{"array", vschema.IsArray([]any{}), true},
		{"array/typed", vschema.IsArray([]string{"a"}), true},
		{"null", vschema.IsNull(nil), true},
		{"object/null", vschema.IsObject(nil), true},
		{"object/array", vschema.IsObject([]any{}), true},
		{"object/string", vschema.IsObject("x"), false},
		{"undefined", vschema.IsUndefined(vschema.Undefined), true},
		{"equal", vschema.IsEqual(1, 1.0), true},
		{"equal/category", vschema.IsEqual(0, "0"), false},
		{"gt", vschema.IsGreaterThan(0, 1), true},
		{"gt/equal", vschema.IsGreaterThan(1, 1), false},
		{"gte", vschema.IsGreaterThanOrEqualTo(1, 1), true},
		{"lt", vschema.IsLessThan(1, 0.5), true},
		{"lte", vschema.IsLessThanOrEqualTo(1, 2), false},
		{"gt/string", vschema.IsGreaterThan(0, "5"), false},
		{"regex", vschema.IsRegEx(re, "aaa"), true},
		{"regex/miss", vschema.IsRegEx(re, "ab"), false},
		{"iso8601", vschema.IsIso8601("2024-01-02T03:04:05.000Z"), true},
		{"iso8601/no millis", vschema.IsIso8601("2024-01-02T03:04:05Z"), false},
		{"date", vschema.IsDateString("2024-01-02"), true},
		{"date/bad", vschema.IsDateString("yesterday"), false},
		{"uuid", vschema.IsUUID(uuid.NewString()), true},
		{"uuid/bad", vschema.IsUUID("not-a-uuid"), false},
		{"same type", vschema.IsSameTypeName("string", "string"), true},
	}
	for _, tc := range cases {
		if got := tc.err == nil; got != tc.ok {
			t.Errorf("%s: ok = %v, want %v (err %v)", tc.name, got, tc.ok, tc.err)
		}
	}
}

type label string

func TestPredicates_NamedStringTypes(t *testing.T) {
	re := regexp.MustCompile(`^a+$`)
	require.NoError(t, vschema.IsString(label("aaa")))
	require.NoError(t, vschema.IsRegEx(re, label("aaa")))
	require.Error(t, vschema.IsRegEx(re, label("b")))
	require.NoError(t, vschema.IsIso8601(label("2024-01-02T03:04:05.000Z")))
	require.NoError(t, vschema.IsDateString(label("2024-01-02")))
	require.NoError(t, vschema.IsUUID(label("6ba7b810-9dad-11d1-80b4-00c04fd430c8")))

	assert.True(t, vschema.Is(vschema.RegEx(`^a+$`), label("aaa")))
	assert.True(t, vschema.Is(vschema.Primitive(vschema.CategoryString), label("aaa")))
}

func TestPredicates_Invert(t *testing.T) {
	require.NoError(t, vschema.IsNull(1, vschema.Invert))

	err := vschema.IsNull(nil, vschema.Invert)
	var ae *vschema.AssertionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "isNotNull", ae.Assertion)
	assert.Equal(t, "is null", ae.Detail)

	err = vschema.IsString(1)
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "isString", ae.Assertion)
	assert.Equal(t, "is not a string", ae.Detail)
	assert.Equal(t, "[isString] 1 is not a string", err.Error())
}

func TestConversions(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	id := uuid.New()
	cases := []struct {
		name string
		conv func(any) (any, error)
		in   any
		want any
	}{
		{"int/string", vschema.ToInt, "42", 42},
		{"int/zero fraction", vschema.ToInt, "42.00", 42},
		{"int/float", vschema.ToInt, 3.0, 3},
		{"int/json", vschema.ToInt, json.Number("8"), 8},
		{"number/string", vschema.ToNumber, " 1.5 ", 1.5},
		{"number/int", vschema.ToNumber, 2, 2.0},
		{"bool/true", vschema.ToBoolean, "true", true},
		{"bool/zero", vschema.ToBoolean, 0, false},
		{"bool/one", vschema.ToBoolean, 1.0, true},
		{"iso/date", vschema.ToIso8601, "2024-05-06", "2024-05-06T00:00:00.000Z"},
		{"iso/offset", vschema.ToIso8601, "2024-05-06T09:08:09+02:00", "2024-05-06T07:08:09.000Z"},
		{"iso/time", vschema.ToIso8601, ts, "2024-05-06T07:08:09.000Z"},
		{"uuid", vschema.ToUUID, id.String(), id},
	}
	for _, tc := range cases {
		got, err := tc.conv(tc.in)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		assert.Equal(t, tc.want, got, tc.name)
	}

	d, err := vschema.ToDate("2024-05-06T09:08:09+02:00")
	require.NoError(t, err)
	assert.True(t, ts.Equal(d.(time.Time)), "ToDate = %v", d)
}

func TestConversions_Fail(t *testing.T) {
	cases := []struct {
		conv      func(any) (any, error)
		in        any
		converter string
	}{
		{vschema.ToInt, "-1", "toInt"},
		{vschema.ToInt, "1.5", "toInt"},
		{vschema.ToInt, 1.5, "toInt"},
		{vschema.ToInt, true, "toInt"},
		{vschema.ToNumber, "abc", "toNumber"},
		{vschema.ToBoolean, "yes", "toBoolean"},
		{vschema.ToBoolean, 2, "toBoolean"},
		{vschema.ToIso8601, 5, "toIso8601"},
		{vschema.ToDate, "nope", "toDate"},
		{vschema.ToUUID, "nope", "toUUID"},
	}
	for _, tc := range cases {
		_, err := tc.conv(tc.in)
		var ce *vschema.ConversionError
		if !errors.As(err, &ce) {
			t.Errorf("%s(%#v): want *ConversionError, got %v", tc.converter, tc.in, err)
			continue
		}
		assert.Equal(t, tc.converter, ce.Converter)
		assert.Equal(t, tc.in, ce.Value)
	}
}

func TestCategoryAndTypeName(t *testing.T) {
	assert.Equal(t, vschema.CategoryNull, vschema.Category(nil))
	assert.Equal(t, vschema.CategoryUndefined, vschema.Category(vschema.Undefined))
	assert.Equal(t, vschema.CategoryNumber, vschema.Category(uint16(1)))
	assert.Equal(t, vschema.CategoryObject, vschema.Category(time.Time{}))
	assert.Equal(t, "float64", vschema.TypeName(1.0))
	assert.Equal(t, "time.Time", vschema.TypeName(time.Time{}))
	assert.Equal(t, "null", vschema.TypeName(nil))

	c, ok := vschema.ParseCategory("boolean")
	require.True(t, ok)
	assert.Equal(t, vschema.CategoryBoolean, c)
	_, ok = vschema.ParseCategory("date")
	assert.False(t, ok)
}
