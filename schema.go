package vschema

import (
	"encoding/json"
	"fmt"
	"reflect"

	js "github.com/reoring/vschema/jsonschema"
)

// Kind is the validation rule a schema value selects.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindLiteral
	KindNull
	KindUndefined
	KindObject
	KindArray
	KindType
	KindOptions
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindType:
		return "type"
	case KindOptions:
		return "options"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Mode selects how an options node combines its schemas.
type Mode uint8

const (
	// ModeAny succeeds with the first schema that validates.
	ModeAny Mode = iota
	// ModeAll chains every schema, feeding each output to the next.
	ModeAll
)

func (m Mode) String() string {
	if m == ModeAll {
		return "all"
	}
	return "any"
}

// Object is an object schema: each field maps to the schema of the input
// field with the same name. Input fields not listed are ignored.
// A plain map[string]any is accepted as well.
type Object map[string]any

// Array is an array schema: each input element must match at least one of
// the element schemas. A plain []any is accepted as well.
type Array []any

// Func is a custom validation function. It returns the (possibly
// transformed) value or an error describing why input was rejected.
type Func func(input any, path string) (any, error)

// Node is a combinator schema node: a type check, an options group or a
// custom validator. Nodes are built by the constructors of this package and
// are read-only afterwards, except for their name (see Alias).
type Node struct {
	kind Kind
	name string

	// KindType
	typeName string
	nameOf   func(any) string
	rtype    reflect.Type
	category ValueCategory
	isPrim   bool

	// KindOptions
	mode    Mode
	schemas []any

	// KindCustom
	fn Func

	// projection used by JSONSchema for built-in validators
	export func() *js.Schema
}

// Kind reports the node kind; a nil or zero Node is KindUnknown.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUnknown
	}
	return n.kind
}

// Name returns the display name used in errors.
func (n *Node) Name() string { return n.name }

// TypeName returns the type name a type node is bound to.
func (n *Node) TypeName() string { return n.typeName }

// Mode returns the mode of an options node.
func (n *Node) Mode() Mode { return n.mode }

// Schemas returns a copy of the sub-schemas of an options node.
func (n *Node) Schemas() []any { return append([]any(nil), n.schemas...) }

// Named renames the node in place and returns it. The node is shared, so
// every schema referencing it sees the new name.
func (n *Node) Named(name string) *Node {
	n.name = name
	return n
}

// Alias renames n in place and returns the same node.
func Alias(n *Node, name string) *Node { return n.Named(name) }

func (n *Node) String() string { return fmt.Sprintf("%s(%s)", n.kind, n.name) }

// Classify maps a schema value to the rule that validates against it.
// It is total: anything unrecognized is KindUnknown.
func Classify(schema any) Kind {
	switch s := schema.(type) {
	case nil:
		return KindNull
	case UndefinedType:
		return KindUndefined
	case *Node:
		return s.Kind()
	case Object, map[string]any:
		return KindObject
	case Array:
		return arrayKind(len(s))
	case []any:
		return arrayKind(len(s))
	case string, bool, json.Number:
		return KindLiteral
	case *Symbol:
		if s == nil {
			return KindUnknown
		}
		return KindLiteral
	}
	switch Category(schema) {
	case CategoryNumber, CategoryString, CategoryBoolean:
		return KindLiteral
	}
	return KindUnknown
}

func arrayKind(n int) Kind {
	if n == 0 {
		return KindUnknown
	}
	return KindArray
}

func pickName(name []string, def string) string {
	if len(name) > 0 && name[0] != "" {
		return name[0]
	}
	return def
}

// Type returns a node accepting values whose dynamic Go type is T. The
// default name is the type name. Type panics when T is an interface type,
// since no dynamic type can equal it.
func Type[T any](name ...string) *Node {
	n, err := TypeOf(reflect.TypeOf((*T)(nil)).Elem(), name...)
	if err != nil {
		panic(err)
	}
	return n
}

// TypeOf is Type for a reflect.Type. It fails for nil and interface types.
func TypeOf(t reflect.Type, name ...string) (*Node, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrInvalidSchema)
	}
	if t.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: interface type %s has no instances", ErrInvalidSchema, t)
	}
	tn := t.String()
	return &Node{kind: KindType, name: pickName(name, tn), typeName: tn, nameOf: TypeName, rtype: t}, nil
}

// Primitive returns a node accepting values of category c, whatever their
// Go type: Primitive(CategoryNumber) accepts int, float64 and json.Number.
func Primitive(c ValueCategory, name ...string) *Node {
	if !c.valid() {
		panic(fmt.Errorf("%w: unknown category %d", ErrInvalidSchema, c))
	}
	cn := c.String()
	return &Node{kind: KindType, name: pickName(name, cn), typeName: cn, nameOf: categoryName, category: c, isPrim: true}
}

// Options returns a node combining schemas in the given mode.
func Options(mode Mode, schemas ...any) *Node {
	return &Node{kind: KindOptions, name: "Options", mode: mode, schemas: append([]any(nil), schemas...)}
}

// Any accepts the output of the first schema that validates, trying them in
// order. It fails when none does. Name it with Named or Alias.
func Any(schemas ...any) *Node { return Options(ModeAny, schemas...).Named("Any") }

// All validates schemas in order, feeding each output into the next, and
// stops at the first failure. Name it with Named or Alias.
func All(schemas ...any) *Node { return Options(ModeAll, schemas...).Named("All") }

// Optional accepts Undefined or anything schema accepts.
func Optional(schema any, name ...string) *Node {
	return Options(ModeAny, schema, Undefined).Named(pickName(name, "Optional"))
}

// Nullable accepts nil or anything schema accepts.
func Nullable(schema any, name ...string) *Node {
	return Options(ModeAny, schema, nil).Named(pickName(name, "Nullable"))
}

// Validator wraps fn as a custom validator node. It panics when fn is nil.
func Validator(fn Func, name ...string) *Node {
	if fn == nil {
		panic(fmt.Errorf("%w: nil validator function", ErrInvalidSchema))
	}
	return &Node{kind: KindCustom, name: pickName(name, "Validator"), fn: fn}
}
