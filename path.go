package vschema

import (
	"strconv"
	"strings"
)

// Path locates a value inside the input. Fields render as .name and
// elements as [i] after an optional root name; Pointer renders the same
// location as an RFC 6901 JSON Pointer.
//
// Path is a value type; Field and Index never modify the receiver.
type Path struct {
	root  string
	parts []pathPart
}

type pathPart struct {
	field string
	index int
	isIdx bool
}

// RootPath returns the path of the validated value itself.
func RootPath(name string) Path { return Path{root: name} }

// Field returns the path of the named field below p.
func (p Path) Field(name string) Path {
	return Path{root: p.root, parts: append(p.parts[:len(p.parts):len(p.parts)], pathPart{field: name})}
}

// Index returns the path of element i below p.
func (p Path) Index(i int) Path {
	return Path{root: p.root, parts: append(p.parts[:len(p.parts):len(p.parts)], pathPart{index: i, isIdx: true})}
}

func (p Path) String() string {
	if len(p.parts) == 0 {
		return p.root
	}
	b := &strings.Builder{}
	b.WriteString(p.root)
	for _, part := range p.parts {
		if part.isIdx {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(part.index))
			b.WriteByte(']')
			continue
		}
		b.WriteByte('.')
		b.WriteString(part.field)
	}
	return b.String()
}

// Pointer renders p as a JSON Pointer ("/" for the root).
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, part := range p.parts {
		b.WriteByte('/')
		if part.isIdx {
			b.WriteString(strconv.Itoa(part.index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(part.field, "~", "~0"), "/", "~1"))
	}
	return b.String()
}
