package vschema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeAssertion     = "assertion_failed"
	CodeConversion    = "conversion_failed"
	CodeNotMatchAny   = "not_match_any"
	CodeUnknownSchema = "unknown_schema"
	CodeCustom        = "custom_failed"
)

// Issue is one leaf failure of an error tree, flattened.
type Issue struct {
	Path    string `json:"path"`           // property path, e.g. .tags[1]
	Pointer string `json:"pointer"`        // JSON Pointer, e.g. /tags/1
	Code    string `json:"code"`           // One of the codes listed above.
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"` // name of the validator that failed
	Cause   error  `json:"-"`              // the leaf error
	// Params carries structured parameters (e.g. {"assertion": "isString"})
	// for observability.
	Params map[string]any `json:"params,omitempty"`
}

// Issues is a flat collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. assertion_failed at .tags[1]
		fmt.Fprintf(b, "%s at %s", it.Code, displayPath(it.Path))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Has reports whether an issue exists at the given property path.
func (iss Issues) Has(path string) bool {
	for _, it := range iss {
		if it.Path == path {
			return true
		}
	}
	return false
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssueAt creates an Issue located at p.
func IssueAt(p Path, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.String(), Pointer: p.Pointer(), Code: code, Message: msg, Params: params}
}

// Flatten lists the leaf failures of an error tree in traversal order. Each
// failing Any group yields a single not_match_any issue rather than one per
// alternative.
func Flatten(err error) Issues {
	if err == nil {
		return nil
	}
	var out Issues
	flatten(err, &out)
	return out
}

func flatten(err error, out *Issues) {
	switch e := err.(type) {
	case *AggregateError:
		for _, child := range e.Errors {
			flatten(child, out)
		}
	case *ValidatorError:
		flattenCause(e, out)
	case Issues:
		*out = append(*out, e...)
	default:
		*out = append(*out, Issue{Code: CodeCustom, Message: err.Error(), Cause: err})
	}
}

func flattenCause(ve *ValidatorError, out *Issues) {
	it := Issue{Path: ve.Path, Pointer: ve.Pointer, Rule: ve.Validator, Cause: ve.Cause}
	switch c := ve.Cause.(type) {
	case *AggregateError, *ValidatorError, Issues:
		flatten(c, out)
		return
	case *NotMatchAnyError:
		it.Code = CodeNotMatchAny
		it.Message = c.Error()
		it.Params = map[string]any{"options": len(c.Errors)}
	case *AssertionError:
		it.Code = CodeAssertion
		it.Message = c.Detail
		it.Params = map[string]any{"assertion": c.Assertion, "value": c.Value}
	case *ConversionError:
		it.Code = CodeConversion
		it.Message = c.Detail
		it.Params = map[string]any{"converter": c.Converter, "value": c.Value}
	case nil:
		it.Code = CodeCustom
		it.Message = "validation failed"
	default:
		it.Code = CodeCustom
		if errors.Is(c, ErrUnknownSchema) {
			it.Code = CodeUnknownSchema
		}
		it.Message = c.Error()
	}
	*out = append(*out, it)
}
