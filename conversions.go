package vschema

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Converters either return the fully coerced value or a *ConversionError;
// they never coerce partially.

var intPattern = regexp.MustCompile(`^(\d+)(\.0+)?$`)

// ToInt converts integral numbers and unsigned decimal strings ("42",
// "42.00") to int.
func ToInt(input any) (any, error) {
	fail := &ConversionError{Value: input, Converter: "toInt", Detail: "could not be converted to an integer"}
	if s, ok := input.(string); ok {
		m := intPattern.FindStringSubmatch(s)
		if m == nil {
			return nil, fail
		}
		i, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fail
		}
		return i, nil
	}
	n, ok := toNumber(input)
	if !ok {
		return nil, fail
	}
	switch {
	case n.isInt:
		if n.i < math.MinInt || n.i > math.MaxInt {
			return nil, fail
		}
		return int(n.i), nil
	case n.isFloat:
		f := n.f
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fail
		}
		return int(f), nil
	}
	return nil, fail
}

// ToNumber converts numbers and numeric strings to float64.
func ToNumber(input any) (any, error) {
	fail := &ConversionError{Value: input, Converter: "toNumber", Detail: "could not be converted to a number"}
	if s, ok := input.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) {
			return nil, fail
		}
		return f, nil
	}
	n, ok := toNumber(input)
	if !ok || math.IsNaN(n.float()) {
		return nil, fail
	}
	return n.float(), nil
}

// ToBoolean converts booleans, "true"/"false" and the numbers 1/0.
func ToBoolean(input any) (any, error) {
	switch t := input.(type) {
	case bool:
		return t, nil
	case string:
		switch t {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	default:
		if n, ok := toNumber(input); ok {
			switch n.float() {
			case 1:
				return true, nil
			case 0:
				return false, nil
			}
		}
	}
	return nil, &ConversionError{Value: input, Converter: "toBoolean", Detail: "could not be converted to a boolean"}
}

// ToIso8601 converts date strings and time.Time values to the canonical
// ISO 8601 string.
func ToIso8601(input any) (any, error) {
	switch t := input.(type) {
	case time.Time:
		return formatIso8601(t), nil
	case string:
		if d, err := parseDate(t); err == nil {
			return formatIso8601(d), nil
		}
	}
	return nil, &ConversionError{Value: input, Converter: "toIso8601", Detail: "could not be converted to an ISO8601 Date"}
}

// ToDate converts date strings to time.Time.
func ToDate(input any) (any, error) {
	switch t := input.(type) {
	case time.Time:
		return t, nil
	case string:
		if d, err := parseDate(t); err == nil {
			return d, nil
		}
	}
	return nil, &ConversionError{Value: input, Converter: "toDate", Detail: "could not be converted to a Date"}
}

// ToUUID converts UUID strings to uuid.UUID.
func ToUUID(input any) (any, error) {
	switch t := input.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		if id, err := uuid.Parse(t); err == nil {
			return id, nil
		}
	}
	return nil, &ConversionError{Value: input, Converter: "toUUID", Detail: "could not be converted to a UUID"}
}
