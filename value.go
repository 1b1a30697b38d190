package vschema

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// UndefinedType is the type of Undefined.
type UndefinedType struct{}

// Undefined marks an absent value. Missing object fields read as Undefined,
// and Undefined used as a schema accepts only Undefined.
var Undefined UndefinedType

func (UndefinedType) String() string { return "undefined" }

// MarshalJSON renders Undefined as null; JSON has no absent value.
func (UndefinedType) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Symbol is a unique value compared by identity. Two symbols with the same
// description are different values.
type Symbol struct {
	description string
}

// NewSymbol returns a new unique symbol.
func NewSymbol(description string) *Symbol { return &Symbol{description: description} }

// Description returns the label given to NewSymbol.
func (s *Symbol) Description() string { return s.description }

func (s *Symbol) String() string { return "Symbol(" + s.description + ")" }

// MarshalJSON renders the symbol as its String form.
func (s *Symbol) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// ValueCategory is the coarse runtime category of a value, mirroring the
// categories of a JSON-like document.
type ValueCategory uint8

const (
	CategoryUndefined ValueCategory = iota
	CategoryNull
	CategoryString
	CategoryNumber
	CategoryBoolean
	CategorySymbol
	CategoryArray
	CategoryObject
)

var categoryNames = [...]string{
	CategoryUndefined: "undefined",
	CategoryNull:      "null",
	CategoryString:    "string",
	CategoryNumber:    "number",
	CategoryBoolean:   "boolean",
	CategorySymbol:    "symbol",
	CategoryArray:     "array",
	CategoryObject:    "object",
}

func (c ValueCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "category(" + strconv.Itoa(int(c)) + ")"
}

func (c ValueCategory) valid() bool { return int(c) < len(categoryNames) }

// ParseCategory maps a category name ("string", "number", ...) back to its
// ValueCategory.
func ParseCategory(name string) (ValueCategory, bool) {
	for i, n := range categoryNames {
		if n == name {
			return ValueCategory(i), true
		}
	}
	return 0, false
}

// Category reports the category of v. Go numeric kinds and json.Number are
// numbers, slices and arrays are arrays, string-keyed maps are objects, and
// every other value (structs, pointers, time.Time) is an object.
func Category(v any) ValueCategory {
	switch v.(type) {
	case nil:
		return CategoryNull
	case UndefinedType:
		return CategoryUndefined
	case string:
		return CategoryString
	case bool:
		return CategoryBoolean
	case json.Number:
		return CategoryNumber
	case *Symbol:
		return CategorySymbol
	case []any:
		return CategoryArray
	case map[string]any:
		return CategoryObject
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return CategoryNumber
	case reflect.String:
		return CategoryString
	case reflect.Bool:
		return CategoryBoolean
	case reflect.Slice, reflect.Array:
		return CategoryArray
	default:
		return CategoryObject
	}
}

// TypeName reports the Go runtime type name of v ("string", "float64",
// "time.Time"), or "null" and "undefined" for nil and Undefined.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case UndefinedType:
		return "undefined"
	}
	return reflect.TypeOf(v).String()
}

func categoryName(v any) string { return Category(v).String() }

// stringOf returns the contents of any string-kinded value, including
// named string types.
func stringOf(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if Category(v) != CategoryString {
		return "", false
	}
	return reflect.ValueOf(v).String(), true
}

// asArray returns v as []any when its category is array.
func asArray(v any) ([]any, bool) {
	if a, ok := v.([]any); ok {
		return a, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asObject returns v as map[string]any when v is a string-keyed map.
func asObject(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// number is a numeric value split into integer and float views so that
// equality between Go kinds stays exact for integers.
type number struct {
	i       int64
	u       uint64
	f       float64
	isInt   bool
	isUint  bool
	isFloat bool
}

func toNumber(v any) (number, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return number{i: i, isInt: true}, true
		}
		f, err := n.Float64()
		if err != nil {
			return number{}, false
		}
		return number{f: f, isFloat: true}, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{i: rv.Int(), isInt: true}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return number{i: int64(u), isInt: true}, true
		}
		return number{u: u, isUint: true}, true
	case reflect.Float32, reflect.Float64:
		return number{f: rv.Float(), isFloat: true}, true
	}
	return number{}, false
}

func (n number) float() float64 {
	switch {
	case n.isInt:
		return float64(n.i)
	case n.isUint:
		return float64(n.u)
	default:
		return n.f
	}
}

func (n number) equal(o number) bool {
	switch {
	case n.isInt && o.isInt:
		return n.i == o.i
	case n.isUint && o.isUint:
		return n.u == o.u
	case n.isFloat || o.isFloat:
		return n.float() == o.float()
	default:
		// one int64, one uint64 above MaxInt64
		return false
	}
}

func isNaN(v any) bool {
	n, ok := toNumber(v)
	return ok && n.isFloat && math.IsNaN(n.f)
}

// strictEqual reports whether a and b share a category and are equal
// without coercion. Numbers compare numerically across Go kinds, symbols
// and containers by identity.
func strictEqual(a, b any) bool {
	ca, cb := Category(a), Category(b)
	if ca != cb {
		return false
	}
	switch ca {
	case CategoryNull, CategoryUndefined:
		return true
	case CategoryNumber:
		na, okA := toNumber(a)
		nb, okB := toNumber(b)
		return okA && okB && na.equal(nb)
	case CategoryString:
		return reflect.ValueOf(a).String() == reflect.ValueOf(b).String()
	case CategoryBoolean:
		return reflect.ValueOf(a).Bool() == reflect.ValueOf(b).Bool()
	case CategorySymbol:
		return a.(*Symbol) == b.(*Symbol)
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Func, reflect.Chan:
		return ra.Pointer() == rb.Pointer()
	}
	if ra.Type().Comparable() {
		return a == b
	}
	return false
}
