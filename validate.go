package vschema

import (
	"fmt"
	"sort"
)

// validateValue dispatches on the schema kind and returns the produced
// value. It never mutates input.
func validateValue(schema, input any, p Path) (any, error) {
	switch Classify(schema) {
	case KindNull:
		return validateNull(input, p)
	case KindUndefined:
		return validateUndefined(input, p)
	case KindArray:
		return validateArray(arraySchemas(schema), input, p)
	case KindObject:
		return validateObject(objectFields(schema), input, p)
	case KindType:
		return validateType(schema.(*Node), input, p)
	case KindOptions:
		return validateOptions(schema.(*Node), input, p)
	case KindCustom:
		return validateCustom(schema.(*Node), input, p)
	case KindLiteral:
		return validateLiteral(schema, input, p)
	default:
		return nil, newValidatorError("Unknown", p, input, ErrUnknownSchema)
	}
}

func arraySchemas(schema any) []any {
	if a, ok := schema.(Array); ok {
		return a
	}
	return schema.([]any)
}

func objectFields(schema any) map[string]any {
	if o, ok := schema.(Object); ok {
		return o
	}
	return schema.(map[string]any)
}

func validateNull(input any, p Path) (any, error) {
	if err := IsNull(input); err != nil {
		return nil, newValidatorError("Null", p, input, err)
	}
	return nil, nil
}

func validateUndefined(input any, p Path) (any, error) {
	if err := IsUndefined(input); err != nil {
		return nil, newValidatorError("Undefined", p, input, err)
	}
	return Undefined, nil
}

// validateArray matches every element against the element schemas (first
// success wins) and reports one child error per failing element.
func validateArray(schemas []any, input any, p Path) (any, error) {
	if err := IsArray(input); err != nil {
		return nil, newValidatorError("Array", p, input, err)
	}
	elems, _ := asArray(input)
	out := make([]any, len(elems))
	var failed []error
	for i, elem := range elems {
		ep := p.Index(i)
		var attempts []error
		matched := false
		for _, s := range schemas {
			v, err := validateValue(s, elem, ep)
			if err == nil {
				out[i] = v
				matched = true
				break
			}
			attempts = append(attempts, err)
		}
		if matched {
			continue
		}
		if len(attempts) == 1 {
			failed = append(failed, attempts[0])
			continue
		}
		failed = append(failed, newValidatorError("Array", ep, elem, &NotMatchAnyError{Value: elem, Errors: attempts}))
	}
	if len(failed) > 0 {
		return nil, &AggregateError{Validator: "Array", Path: p.String(), Pointer: p.Pointer(), Value: input, Errors: failed}
	}
	return out, nil
}

// validateObject validates every declared field independently, in sorted
// field order. Undeclared input fields are copied through unchanged; fields
// whose output is Undefined are left out.
func validateObject(fields map[string]any, input any, p Path) (any, error) {
	for _, assertion := range []func() error{
		func() error { return IsObject(input) },
		func() error { return IsNull(input, Invert) },
		func() error { return IsArray(input, Invert) },
	} {
		if err := assertion(); err != nil {
			return nil, newValidatorError("Object", p, input, err)
		}
	}
	m, ok := asObject(input)
	if !ok {
		return nil, newValidatorError("Object", p, input,
			&AssertionError{Value: input, Assertion: "isObject", Detail: "is not a string-keyed map"})
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var failed []error
	for _, k := range keys {
		in, present := m[k]
		if !present {
			in = Undefined
		}
		v, err := validateValue(fields[k], in, p.Field(k))
		if err != nil {
			failed = append(failed, err)
			continue
		}
		if _, undef := v.(UndefinedType); undef {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	if len(failed) > 0 {
		return nil, &AggregateError{Validator: "Object", Path: p.String(), Pointer: p.Pointer(), Value: input, Errors: failed}
	}
	return out, nil
}

func validateType(n *Node, input any, p Path) (any, error) {
	if err := IsSameTypeName(n.typeName, n.nameOf(input)); err != nil {
		return nil, newValidatorError(n.name, p, input, err)
	}
	return input, nil
}

func validateOptions(n *Node, input any, p Path) (any, error) {
	if n.mode == ModeAll {
		cur := input
		for _, s := range n.schemas {
			v, err := validateValue(s, cur, p)
			if err != nil {
				return nil, newValidatorError(n.name, p, cur, err)
			}
			cur = v
		}
		return cur, nil
	}
	var attempts []error
	for _, s := range n.schemas {
		v, err := validateValue(s, input, p)
		if err == nil {
			return v, nil
		}
		attempts = append(attempts, err)
	}
	return nil, newValidatorError(n.name, p, input, &NotMatchAnyError{Value: input, Errors: attempts})
}

// validateCustom runs a custom function. A panic in it is reported as the
// node's failure.
func validateCustom(n *Node, input any, p Path) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, newValidatorError(n.name, p, input, fmt.Errorf("panic: %v", r))
		}
	}()
	v, err := n.fn(input, p.String())
	if err != nil {
		return nil, newValidatorError(n.name, p, input, err)
	}
	return v, nil
}

func validateLiteral(schema, input any, p Path) (any, error) {
	var (
		name   string
		assert func(any, ...bool) error
	)
	switch Category(schema) {
	case CategoryString:
		name, assert = "LiteralString", IsString
	case CategoryNumber:
		name, assert = "LiteralNumber", IsNumber
	case CategoryBoolean:
		name, assert = "LiteralBoolean", IsBoolean
	default:
		name, assert = "LiteralSymbol", IsSymbol
	}
	if err := assert(input); err != nil {
		return nil, newValidatorError(name, p, input, err)
	}
	if err := IsEqual(schema, input); err != nil {
		return nil, newValidatorError(name, p, input, err)
	}
	return input, nil
}
