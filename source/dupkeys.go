package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DuplicateKey locates a member whose key already appeared in the same
// JSON object.
type DuplicateKey struct {
	Pointer string // JSON Pointer of the duplicated member, e.g. /a/0/name
	Key     string
}

// DuplicateKeyError lists the duplicated members of a JSON document.
type DuplicateKeyError struct {
	Keys []DuplicateKey
}

func (e *DuplicateKeyError) Error() string {
	ptrs := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		ptrs[i] = k.Pointer
	}
	return "source: duplicate keys at " + strings.Join(ptrs, ", ")
}

type dupFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	ptr          string
	key          string
	next         int
}

// DetectDuplicateKeys scans a JSON document and reports every member whose
// key repeats within its object, in document order. Encoding/json style
// decoders silently keep the last one.
func DetectDuplicateKeys(data []byte) ([]DuplicateKey, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		out   []DuplicateKey
		stack []dupFrame
	)
	// valuePointer consumes the next value slot of the enclosing container.
	valuePointer := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
			return top.ptr + "/" + escapeToken(top.key)
		}
		p := top.ptr + "/" + strconv.Itoa(top.next)
		top.next++
		return p
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				return out, fmt.Errorf("source: scan json: %w", io.ErrUnexpectedEOF)
			}
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("source: scan json: %w", err)
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{object: true, keys: map[string]struct{}{}, expectingKey: true, ptr: valuePointer()})
			case '[':
				stack = append(stack, dupFrame{ptr: valuePointer()})
			case '}', ']':
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := &stack[n-1]
				if _, seen := top.keys[v]; seen {
					out = append(out, DuplicateKey{Pointer: top.ptr + "/" + escapeToken(v), Key: v})
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			valuePointer()
		default:
			valuePointer()
		}
	}
}

func escapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
