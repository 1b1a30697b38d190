package vschema

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	// ErrInvalidSchema reports a schema-authoring mistake detected while a
	// node is constructed (nil type, interface type, nil function).
	ErrInvalidSchema = errors.New("vschema: invalid schema")

	// ErrUnknownSchema is the cause recorded for schema values that match no
	// validation rule.
	ErrUnknownSchema = errors.New("unable to validate unknown type")
)

// ConversionError reports a failed coercion.
type ConversionError struct {
	Value     any
	Converter string // e.g. toInt
	Detail    string // e.g. "could not be converted to an integer"
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("[%s] %s %s", e.Converter, stringify(e.Value, false), e.Detail)
}

// AssertionError reports a failed predicate.
type AssertionError struct {
	Value     any
	Assertion string // e.g. isString, isNotNull
	Detail    string // e.g. "is not a string"
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("[%s] %s %s", e.Assertion, stringify(e.Value, false), e.Detail)
}

// ValidatorError reports that one named validation step failed at Path.
// Cause holds the underlying failure.
type ValidatorError struct {
	Validator string
	Path      string // property path, e.g. user.tags[1]
	Pointer   string // the same location as a JSON Pointer
	Value     any
	Cause     error
}

func (e *ValidatorError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("validator %s failed on property %s", e.Validator, displayPath(e.Path))
	}
	return fmt.Sprintf("validator %s failed on property %s: %v", e.Validator, displayPath(e.Path), e.Cause)
}

func (e *ValidatorError) Unwrap() error { return e.Cause }

// AggregateError collects independent failures of an object's fields or an
// array's elements, one child per failing field or element.
type AggregateError struct {
	Validator string // Object or Array
	Path      string
	Pointer   string
	Value     any
	Errors    []error
}

func (e *AggregateError) Error() string {
	const maxShown = 3
	b := &strings.Builder{}
	n := len(e.Errors)
	fmt.Fprintf(b, "%s on property %s: %d validation error", e.Validator, displayPath(e.Path), n)
	if n != 1 {
		b.WriteString("s")
	}
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(e.Errors[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (+%d more)", n-lim)
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// NotMatchAnyError reports that no alternative of an Any group matched.
// Errors holds one failure per attempted alternative, in attempt order.
type NotMatchAnyError struct {
	Value  any
	Errors []error
}

func (e *NotMatchAnyError) Error() string {
	return fmt.Sprintf("%s does not match any of %d options", stringify(e.Value, false), len(e.Errors))
}

func (e *NotMatchAnyError) Unwrap() []error { return e.Errors }

func newValidatorError(validator string, p Path, value any, cause error) *ValidatorError {
	return &ValidatorError{Validator: validator, Path: p.String(), Pointer: p.Pointer(), Value: value, Cause: cause}
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}

// stringify renders v as JSON for messages. Values JSON cannot represent
// fall back to fmt.
func stringify(v any, indent bool) string {
	switch t := v.(type) {
	case UndefinedType:
		return "undefined"
	case *Symbol:
		return t.String()
	}
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
