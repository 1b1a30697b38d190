package vschema

import (
	"fmt"
	"reflect"
	"sort"

	js "github.com/reoring/vschema/jsonschema"
)

// JSONSchema projects a schema into a JSON Schema representation. Object
// fields that accept Undefined are not required; Any becomes anyOf and All
// becomes allOf. Custom validators without a known projection export as an
// unconstrained schema. Symbols and bare Undefined have no JSON form and
// yield an ErrInvalidSchema error.
func JSONSchema(schema any) (*js.Schema, error) {
	return exportSchema(schema)
}

func exportSchema(schema any) (*js.Schema, error) {
	switch Classify(schema) {
	case KindNull:
		return &js.Schema{Type: "null"}, nil
	case KindLiteral:
		if Category(schema) == CategorySymbol {
			return nil, fmt.Errorf("%w: symbol literal has no JSON Schema form", ErrInvalidSchema)
		}
		return &js.Schema{Enum: []any{schema}}, nil
	case KindObject:
		return exportObject(objectFields(schema))
	case KindArray:
		return exportArray(arraySchemas(schema))
	case KindType:
		return exportType(schema.(*Node))
	case KindOptions:
		return exportOptions(schema.(*Node))
	case KindCustom:
		if n := schema.(*Node); n.export != nil {
			return n.export(), nil
		}
		return &js.Schema{}, nil
	case KindUndefined:
		return nil, fmt.Errorf("%w: undefined has no JSON Schema form", ErrInvalidSchema)
	default:
		return nil, fmt.Errorf("%w: unknown schema %T", ErrInvalidSchema, schema)
	}
}

func exportObject(fields map[string]any) (*js.Schema, error) {
	out := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(fields))}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fs := fields[k]
		if Classify(fs) == KindUndefined {
			continue
		}
		sub, err := exportSchema(fs)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", k, err)
		}
		out.Properties[k] = sub
		if !acceptsUndefined(fs) {
			out.Required = append(out.Required, k)
		}
	}
	return out, nil
}

func exportArray(schemas []any) (*js.Schema, error) {
	items, err := exportAlternatives(schemas)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	return &js.Schema{Type: "array", Items: items}, nil
}

// exportAlternatives renders an ANY group, dropping Undefined alternatives.
func exportAlternatives(schemas []any) (*js.Schema, error) {
	var alts []*js.Schema
	for _, s := range schemas {
		if Classify(s) == KindUndefined {
			continue
		}
		sub, err := exportSchema(s)
		if err != nil {
			return nil, err
		}
		alts = append(alts, sub)
	}
	switch len(alts) {
	case 0:
		return nil, fmt.Errorf("%w: no alternative has a JSON Schema form", ErrInvalidSchema)
	case 1:
		return alts[0], nil
	default:
		return &js.Schema{AnyOf: alts}, nil
	}
}

func exportOptions(n *Node) (*js.Schema, error) {
	if n.mode == ModeAny {
		return exportAlternatives(n.schemas)
	}
	out := &js.Schema{}
	for _, s := range n.schemas {
		sub, err := exportSchema(s)
		if err != nil {
			return nil, err
		}
		out.AllOf = append(out.AllOf, sub)
	}
	return out, nil
}

func exportType(n *Node) (*js.Schema, error) {
	if n.isPrim {
		switch n.category {
		case CategoryString, CategoryNumber, CategoryBoolean, CategoryNull, CategoryArray, CategoryObject:
			return &js.Schema{Type: n.category.String()}, nil
		}
		return nil, fmt.Errorf("%w: %s has no JSON Schema form", ErrInvalidSchema, n.category)
	}
	if n.rtype == nil {
		return &js.Schema{}, nil
	}
	switch n.rtype.Kind() {
	case reflect.String:
		return &js.Schema{Type: "string"}, nil
	case reflect.Bool:
		return &js.Schema{Type: "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &js.Schema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &js.Schema{Type: "number"}, nil
	case reflect.Slice, reflect.Array:
		return &js.Schema{Type: "array"}, nil
	case reflect.Map:
		return &js.Schema{Type: "object"}, nil
	default:
		return &js.Schema{Description: "Go type " + n.typeName}, nil
	}
}

// acceptsUndefined reports whether a missing field can satisfy schema.
func acceptsUndefined(schema any) bool {
	switch Classify(schema) {
	case KindUndefined:
		return true
	case KindOptions:
		n := schema.(*Node)
		if n.mode == ModeAll {
			for _, s := range n.schemas {
				if !acceptsUndefined(s) {
					return false
				}
			}
			return true
		}
		for _, s := range n.schemas {
			if acceptsUndefined(s) {
				return true
			}
		}
	}
	return false
}
