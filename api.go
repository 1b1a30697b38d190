package vschema

import (
	"fmt"
	"log/slog"

	"github.com/mitchellh/mapstructure"
)

// Validate checks input against schema and returns the produced value: a
// new tree for objects and arrays, with coercions applied. Input is never
// modified.
//
// On failure it returns the structured error tree unchanged (a
// *ValidatorError or *AggregateError); use Render or Flatten to present it.
// When opt.Logger is set, the rendered trace is logged once at Error level.
func Validate(schema, input any, opts ...ValidateOpt) (any, error) {
	opt := lastValidateOpt(opts)
	out, err := validateValue(schema, input, RootPath(opt.Name))
	if err != nil {
		report(opt, err)
		return nil, err
	}
	return out, nil
}

// ValidateInPlace is Validate that writes produced values back into the
// []any and map[string]any containers of input and returns input itself.
// Other containers are replaced by their produced value.
// Callers must not validate the same input concurrently.
func ValidateInPlace(schema, input any, opts ...ValidateOpt) (any, error) {
	out, err := Validate(schema, input, opts...)
	if err != nil {
		return nil, err
	}
	return applyInPlace(input, out), nil
}

// ValidateInto validates input and decodes the produced value into out,
// which must be a non-nil pointer. Struct fields are matched by their json
// tag, falling back to a case-insensitive field name match.
func ValidateInto(schema, input, out any, opts ...ValidateOpt) error {
	v, err := Validate(schema, input, opts...)
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	})
	if err != nil {
		return fmt.Errorf("vschema: decode target: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("vschema: decode validated value: %w", err)
	}
	return nil
}

// Is reports whether input conforms to schema.
func Is(schema, input any) bool {
	_, err := validateValue(schema, input, RootPath(""))
	return err == nil
}

// MustValidate is Validate that panics on failure.
func MustValidate(schema, input any, opts ...ValidateOpt) any {
	v, err := Validate(schema, input, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func report(opt ValidateOpt, err error) {
	if opt.Logger == nil {
		return
	}
	opt.Logger.Error("validation failed",
		slog.String("name", opt.Name),
		slog.Int("issues", len(Flatten(err))),
		slog.String("trace", Render(err, opt.Render)),
	)
}

func applyInPlace(dst, src any) any {
	switch d := dst.(type) {
	case map[string]any:
		s, ok := src.(map[string]any)
		if !ok {
			return src
		}
		for k := range d {
			if _, keep := s[k]; !keep {
				delete(d, k)
			}
		}
		for k, v := range s {
			if old, ok := d[k]; ok {
				d[k] = applyInPlace(old, v)
				continue
			}
			d[k] = v
		}
		return d
	case []any:
		s, ok := src.([]any)
		if !ok || len(s) != len(d) {
			return src
		}
		for i := range d {
			d[i] = applyInPlace(d[i], s[i])
		}
		return d
	default:
		return src
	}
}
