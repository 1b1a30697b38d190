package vschema

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Primitive predicates. Each returns nil when the check holds and an
// *AssertionError otherwise. Passing invert=true flips the polarity: the
// check must fail for the predicate to pass, and a failure is reported
// under the isNot* name.

// Invert is a readable value for the trailing invert argument.
const Invert = true

func check(ok bool, invert []bool, value any, assertion, detail string) error {
	inv := len(invert) > 0 && invert[0]
	if ok != inv {
		return nil
	}
	name, prefix := assertion, "is not"
	if inv {
		name, prefix = "isNot"+strings.TrimPrefix(assertion, "is"), "is"
	}
	return &AssertionError{Value: value, Assertion: name, Detail: prefix + " " + detail}
}

// IsSameTypeName checks that the type name value equals target.
func IsSameTypeName(target, value string, invert ...bool) error {
	return check(target == value, invert, value, "isSameTypeName", fmt.Sprintf("the same type as %q", target))
}

// IsEqual checks strict equality: same category and same value, without
// coercion between strings and numbers.
func IsEqual(target, value any, invert ...bool) error {
	return check(strictEqual(target, value), invert, value, "isEqual", "equal to "+stringify(target, false))
}

func IsSymbol(value any, invert ...bool) error {
	return check(Category(value) == CategorySymbol, invert, value, "isSymbol", "a symbol")
}

func IsBoolean(value any, invert ...bool) error {
	return check(Category(value) == CategoryBoolean, invert, value, "isBoolean", "a boolean")
}

func IsString(value any, invert ...bool) error {
	return check(Category(value) == CategoryString, invert, value, "isString", "a string")
}

// IsNumber accepts any numeric value except NaN.
func IsNumber(value any, invert ...bool) error {
	return check(Category(value) == CategoryNumber && !isNaN(value), invert, value, "isNumber", "a number")
}

// IsInt accepts finite numbers without a fractional part.
func IsInt(value any, invert ...bool) error {
	ok := false
	if n, isNum := toNumber(value); isNum {
		f := n.float()
		ok = !n.isFloat || (!math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f))
	}
	return check(ok, invert, value, "isInt", "an integer")
}

func IsGreaterThan(target float64, value any, invert ...bool) error {
	n, ok := toNumber(value)
	return check(ok && n.float() > target, invert, value, "isGreaterThan", fmt.Sprintf("> %v", target))
}

func IsGreaterThanOrEqualTo(target float64, value any, invert ...bool) error {
	n, ok := toNumber(value)
	return check(ok && n.float() >= target, invert, value, "isGreaterThanOrEqualTo", fmt.Sprintf(">= %v", target))
}

func IsLessThan(target float64, value any, invert ...bool) error {
	n, ok := toNumber(value)
	return check(ok && n.float() < target, invert, value, "isLessThan", fmt.Sprintf("< %v", target))
}

func IsLessThanOrEqualTo(target float64, value any, invert ...bool) error {
	n, ok := toNumber(value)
	return check(ok && n.float() <= target, invert, value, "isLessThanOrEqualTo", fmt.Sprintf("<= %v", target))
}

func IsArray(value any, invert ...bool) error {
	return check(Category(value) == CategoryArray, invert, value, "isArray", "an array")
}

func IsNull(value any, invert ...bool) error {
	return check(value == nil, invert, value, "isNull", "null")
}

// IsObject follows typeof-object semantics: objects, arrays and null all
// pass. Combine with IsNull and IsArray inverted for plain objects.
func IsObject(value any, invert ...bool) error {
	c := Category(value)
	return check(c == CategoryObject || c == CategoryArray || c == CategoryNull, invert, value, "isObject", "an object")
}

func IsUndefined(value any, invert ...bool) error {
	return check(Category(value) == CategoryUndefined, invert, value, "isUndefined", "undefined")
}

// IsRegEx checks that value is a string matched by re.
func IsRegEx(re *regexp.Regexp, value any, invert ...bool) error {
	s, ok := stringOf(value)
	return check(ok && re.MatchString(s), invert, value, "isRegEx", "a regular expression match")
}

// IsIso8601 checks that value is a string in the canonical
// YYYY-MM-DDTHH:mm:ss.sssZ form.
func IsIso8601(value any, invert ...bool) error {
	s, ok := stringOf(value)
	return check(ok && isIso8601(s), invert, value, "isIso8601", "an ISO8601 date match")
}

// IsDateString checks that value is a string holding a parseable date.
func IsDateString(value any, invert ...bool) error {
	s, ok := stringOf(value)
	if ok {
		_, err := parseDate(s)
		ok = err == nil
	}
	return check(ok, invert, value, "isDateString", "a date string")
}

// IsUUID checks that value is a string holding a UUID.
func IsUUID(value any, invert ...bool) error {
	s, ok := stringOf(value)
	if ok {
		_, err := uuid.Parse(s)
		ok = err == nil
	}
	return check(ok, invert, value, "isUUID", "a UUID")
}
