// Package source decodes JSON and YAML documents into the dynamic value
// model validated by vschema: map[string]any, []any, string, float64/int,
// bool and nil.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// ParseFormat maps "json", "yaml" and "yml" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("source: unknown format %q", name)
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ErrTooLarge is returned when a document exceeds Opt.MaxBytes.
var ErrTooLarge = errors.New("source: max bytes exceeded")

// Opt bundles decoding options.
type Opt struct {
	// MaxBytes caps the document size (0 means unlimited).
	MaxBytes int64
	// RejectDuplicateKeys fails JSON documents that repeat a key within one
	// object with a *DuplicateKeyError. YAML documents always fail on
	// duplicate keys.
	RejectDuplicateKeys bool
}

// Decode decodes data in the given format.
func Decode(data []byte, f Format, opts ...Opt) (any, error) {
	if f == FormatYAML {
		return DecodeYAML(data)
	}
	if lastOpt(opts).RejectDuplicateKeys {
		dups, err := DetectDuplicateKeys(data)
		if err != nil {
			return nil, err
		}
		if len(dups) > 0 {
			return nil, &DuplicateKeyError{Keys: dups}
		}
	}
	return DecodeJSON(data)
}

func lastOpt(opts []Opt) Opt {
	if len(opts) == 0 {
		return Opt{}
	}
	return opts[len(opts)-1]
}

// DecodeReader reads r fully and decodes it. When MaxBytes is set it
// enforces the size cap before decoding.
func DecodeReader(r io.Reader, f Format, opts ...Opt) (any, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: read: %w", err)
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, ErrTooLarge
	}
	return Decode(data, f, opt)
}

// ReadFile decodes the file at path, choosing the format by extension.
func ReadFile(path string, opts ...Opt) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeReader(f, FormatFromPath(path), opts...)
}

// DecodeJSON decodes a single JSON document. Numbers decode as float64.
func DecodeJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(bytes.TrimSpace(data), &v); err != nil {
		return nil, fmt.Errorf("source: decode json: %w", err)
	}
	return v, nil
}

// DecodeYAML decodes a single YAML document. Mappings become
// map[string]any (non-string keys are formatted with fmt) and integers stay
// int.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("source: decode yaml: %w", err)
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
