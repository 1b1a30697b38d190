// Package schemadoc builds vschema schemas from JSON or YAML documents.
//
// Scalars become literals, null becomes the null schema, sequences become
// array schemas and mappings become object schemas. A mapping whose keys
// start with "$" is a directive instead:
//
//	{"$type": "string"}                      primitive category
//	{"$any": [...]}, {"$all": [...]}         combinators
//	{"$optional": S}, {"$nullable": S}       optional / nullable S
//	{"$validator": "id", "convert": true}    built-in validator
//	{"$regex": "^[a-z]+$"}                   pattern match
//	{"$literal": "$ref"}                     literal that would clash with a directive
//	{"$undefined": true}                     the undefined schema
//
// Node directives also accept "$name" to rename the node in errors.
package schemadoc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/reoring/vschema"
	"github.com/reoring/vschema/source"
)

// ValidatorFactory builds a named validator; convert is the directive's
// "convert" flag.
type ValidatorFactory func(convert bool) *vschema.Node

// LoadOpt configures Build and Load. When several are passed the last one
// wins.
type LoadOpt struct {
	// Validators adds or overrides "$validator" names.
	Validators map[string]ValidatorFactory
	// Source bounds the document read by LoadFile.
	Source source.Opt
}

// DefaultValidators maps "$validator" names to the built-in validators.
func DefaultValidators() map[string]ValidatorFactory {
	return map[string]ValidatorFactory{
		"email":    func(bool) *vschema.Node { return vschema.Email() },
		"id":       func(bool) *vschema.Node { return vschema.ID() },
		"int":      func(c bool) *vschema.Node { return vschema.Int(c) },
		"number":   func(c bool) *vschema.Node { return vschema.Number(c) },
		"boolean":  func(c bool) *vschema.Node { return vschema.Boolean(c) },
		"iso8601":  func(c bool) *vschema.Node { return vschema.Iso8601(c) },
		"datetime": func(c bool) *vschema.Node { return vschema.DateTime(c) },
		"uuid":     func(c bool) *vschema.Node { return vschema.UUID(c) },
	}
}

// Load decodes data in format f and builds the schema it describes.
func Load(data []byte, f source.Format, opts ...LoadOpt) (any, error) {
	doc, err := source.Decode(data, f)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts...)
}

// LoadFile reads a schema document, choosing the format by extension.
func LoadFile(path string, opts ...LoadOpt) (any, error) {
	opt := lastOpt(opts)
	doc, err := source.ReadFile(path, opt.Source)
	if err != nil {
		return nil, err
	}
	return Build(doc, opt)
}

// Build turns a decoded document into a schema. Errors wrap
// vschema.ErrInvalidSchema and name the offending location.
func Build(doc any, opts ...LoadOpt) (any, error) {
	opt := lastOpt(opts)
	b := &builder{validators: DefaultValidators()}
	for name, f := range opt.Validators {
		b.validators[name] = f
	}
	return b.build(doc, vschema.RootPath(""))
}

func lastOpt(opts []LoadOpt) LoadOpt {
	if len(opts) == 0 {
		return LoadOpt{}
	}
	return opts[len(opts)-1]
}

type builder struct {
	validators map[string]ValidatorFactory
}

// directive is the decoded form of a "$" mapping.
type directive struct {
	Type      string `mapstructure:"$type"`
	Any       []any  `mapstructure:"$any"`
	All       []any  `mapstructure:"$all"`
	Optional  any    `mapstructure:"$optional"`
	Nullable  any    `mapstructure:"$nullable"`
	Validator string `mapstructure:"$validator"`
	Convert   bool   `mapstructure:"convert"`
	Regex     string `mapstructure:"$regex"`
	Literal   any    `mapstructure:"$literal"`
	Undefined bool   `mapstructure:"$undefined"`
	Name      string `mapstructure:"$name"`
}

var primaryKeys = []string{"$type", "$any", "$all", "$optional", "$nullable", "$validator", "$regex", "$literal", "$undefined"}

func (b *builder) fail(p vschema.Path, format string, args ...any) error {
	at := p.String()
	if at == "" {
		at = "(root)"
	}
	return fmt.Errorf("%w: at %s: %s", vschema.ErrInvalidSchema, at, fmt.Sprintf(format, args...))
}

func (b *builder) build(doc any, p vschema.Path) (any, error) {
	switch t := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		if len(t) == 0 {
			return nil, b.fail(p, "array schema needs at least one element schema")
		}
		return b.buildList(t, p)
	case map[string]any:
		if isDirective(t) {
			return b.buildDirective(t, p)
		}
		out := make(vschema.Object, len(t))
		for k, v := range t {
			s, err := b.build(v, p.Field(k))
			if err != nil {
				return nil, err
			}
			out[k] = s
		}
		return out, nil
	}
	switch vschema.Category(doc) {
	case vschema.CategoryString, vschema.CategoryNumber, vschema.CategoryBoolean:
		return doc, nil
	}
	return nil, b.fail(p, "unsupported document value %T", doc)
}

func (b *builder) buildList(docs []any, p vschema.Path) (vschema.Array, error) {
	out := make(vschema.Array, len(docs))
	for i, d := range docs {
		s, err := b.build(d, p.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func isDirective(m map[string]any) bool {
	for k := range m {
		if strings.HasPrefix(k, "$") {
			return true
		}
	}
	return false
}

func (b *builder) buildDirective(m map[string]any, p vschema.Path) (any, error) {
	var present []string
	for _, k := range primaryKeys {
		if _, ok := m[k]; ok {
			present = append(present, k)
		}
	}
	if len(present) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, b.fail(p, "expected exactly one directive, got keys %v", keys)
	}
	key := present[0]
	if _, ok := m["convert"]; ok && key != "$validator" {
		return nil, b.fail(p, "convert is only valid with $validator")
	}

	var d directive
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &d,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, b.fail(p, "%v", err)
	}

	var node *vschema.Node
	switch key {
	case "$literal":
		return b.literal(d.Literal, m, p)
	case "$undefined":
		if !d.Undefined {
			return nil, b.fail(p, "$undefined must be true")
		}
		if _, named := m["$name"]; named {
			return nil, b.fail(p, "$name requires a node directive")
		}
		return vschema.Undefined, nil
	case "$type":
		c, ok := vschema.ParseCategory(d.Type)
		if !ok {
			return nil, b.fail(p, "unknown $type %q", d.Type)
		}
		node = vschema.Primitive(c)
	case "$any", "$all":
		list := d.Any
		if key == "$all" {
			list = d.All
		}
		schemas, err := b.buildList(list, p)
		if err != nil {
			return nil, err
		}
		if key == "$all" {
			node = vschema.All(schemas...)
		} else {
			node = vschema.Any(schemas...)
		}
	case "$optional", "$nullable":
		inner := d.Optional
		if key == "$nullable" {
			inner = d.Nullable
		}
		s, err := b.build(inner, p)
		if err != nil {
			return nil, err
		}
		if key == "$nullable" {
			node = vschema.Nullable(s)
		} else {
			node = vschema.Optional(s)
		}
	case "$validator":
		f, ok := b.validators[d.Validator]
		if !ok {
			return nil, b.fail(p, "unknown $validator %q", d.Validator)
		}
		node = f(d.Convert)
	case "$regex":
		re, err := regexp.Compile(d.Regex)
		if err != nil {
			return nil, b.fail(p, "$regex: %v", err)
		}
		node = vschema.RegExp(re)
	}
	if d.Name != "" {
		node = vschema.Alias(node, d.Name)
	}
	return node, nil
}

func (b *builder) literal(v any, m map[string]any, p vschema.Path) (any, error) {
	if _, named := m["$name"]; named {
		return nil, b.fail(p, "$name requires a node directive")
	}
	if vschema.Classify(v) != vschema.KindLiteral {
		return nil, b.fail(p, "$literal must be a string, number or boolean")
	}
	return v, nil
}
