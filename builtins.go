package vschema

import (
	"fmt"
	"regexp"

	js "github.com/reoring/vschema/jsonschema"
)

// RFC 5322 based address pattern, anchored and case-insensitive.
const emailAtom = "[a-z0-9!#$%&'*+/=?^_`{|}~-]+"

var emailRE = regexp.MustCompile(`(?i)^(?:` + emailAtom + `(?:\.` + emailAtom + `)*` +
	`|"(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21\x23-\x5b\x5d-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*")` +
	`@(?:(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?` +
	`|\[(?:(?:(2(5[0-5]|[0-4][0-9])|1[0-9][0-9]|[1-9]?[0-9]))\.){3}` +
	`(?:(2(5[0-5]|[0-4][0-9])|1[0-9][0-9]|[1-9]?[0-9])|[a-z0-9-]*[a-z0-9]:` +
	`(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21-\x5a\x53-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])+)\])$`)

func builtin(name string, fn Func, export func() *js.Schema) *Node {
	n := Validator(fn, name)
	n.export = export
	return n
}

func converting(convert []bool) bool { return len(convert) > 0 && convert[0] }

// Email accepts strings holding an e-mail address.
func Email() *Node {
	n := RegExp(emailRE).Named("Email")
	n.export = func() *js.Schema { return &js.Schema{Type: "string", Format: "email"} }
	return n
}

// ID accepts positive integers, converting decimal strings: "5" becomes 5,
// while "0", "-3" and "abc" are rejected.
func ID() *Node {
	return builtin("ID", func(input any, _ string) (any, error) {
		v, err := ToInt(input)
		if err != nil {
			return nil, err
		}
		if err := IsGreaterThan(0, v); err != nil {
			return nil, err
		}
		return v, nil
	}, func() *js.Schema {
		one := 1.0
		return &js.Schema{Type: "integer", Minimum: &one}
	})
}

// RegEx accepts strings matching pattern. It panics when pattern does not
// compile; use RegExp with a precompiled expression to handle that error.
func RegEx(pattern string) *Node {
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic(fmt.Errorf("%w: %v", ErrInvalidSchema, err))
	}
	return RegExp(re)
}

// RegExp accepts strings matched by re.
func RegExp(re *regexp.Regexp) *Node {
	if re == nil {
		panic(fmt.Errorf("%w: nil regular expression", ErrInvalidSchema))
	}
	return builtin("RegEx", func(input any, _ string) (any, error) {
		if err := IsString(input); err != nil {
			return nil, err
		}
		if err := IsRegEx(re, input); err != nil {
			return nil, err
		}
		return input, nil
	}, func() *js.Schema { return &js.Schema{Type: "string", Pattern: re.String()} })
}

// Int accepts integers. With convert it coerces through ToInt instead.
func Int(convert ...bool) *Node {
	conv := converting(convert)
	return builtin("Int", func(input any, _ string) (any, error) {
		if conv {
			return ToInt(input)
		}
		if err := IsInt(input); err != nil {
			return nil, err
		}
		return input, nil
	}, func() *js.Schema { return &js.Schema{Type: "integer"} })
}

// Number accepts numbers. With convert it coerces through ToNumber instead.
func Number(convert ...bool) *Node {
	conv := converting(convert)
	return builtin("Number", func(input any, _ string) (any, error) {
		if conv {
			return ToNumber(input)
		}
		if err := IsNumber(input); err != nil {
			return nil, err
		}
		return input, nil
	}, func() *js.Schema { return &js.Schema{Type: "number"} })
}

// Boolean accepts booleans. With convert it coerces through ToBoolean
// instead.
func Boolean(convert ...bool) *Node {
	conv := converting(convert)
	return builtin("Boolean", func(input any, _ string) (any, error) {
		if conv {
			return ToBoolean(input)
		}
		if err := IsBoolean(input); err != nil {
			return nil, err
		}
		return input, nil
	}, func() *js.Schema { return &js.Schema{Type: "boolean"} })
}

// Iso8601 accepts canonical ISO 8601 strings. With convert it normalizes any
// parseable date to that form.
func Iso8601(convert ...bool) *Node {
	conv := converting(convert)
	return builtin("Iso8601", func(input any, _ string) (any, error) {
		if conv {
			return ToIso8601(input)
		}
		if err := IsString(input); err != nil {
			return nil, err
		}
		if err := IsIso8601(input); err != nil {
			return nil, err
		}
		return input, nil
	}, func() *js.Schema { return &js.Schema{Type: "string", Format: "date-time"} })
}

// DateTime accepts date strings. With convert it produces a time.Time.
func DateTime(convert ...bool) *Node {
	conv := converting(convert)
	return builtin("DateTime", func(input any, _ string) (any, error) {
		if conv {
			return ToDate(input)
		}
		if err := IsDateString(input); err != nil {
			return nil, err
		}
		return input, nil
	}, func() *js.Schema { return &js.Schema{Type: "string", Format: "date-time"} })
}

// UUID accepts UUID strings. With convert it produces a uuid.UUID.
func UUID(convert ...bool) *Node {
	conv := converting(convert)
	return builtin("UUID", func(input any, _ string) (any, error) {
		if conv {
			return ToUUID(input)
		}
		if err := IsUUID(input); err != nil {
			return nil, err
		}
		return input, nil
	}, func() *js.Schema { return &js.Schema{Type: "string", Format: "uuid"} })
}
