// Package middleware validates JSON request bodies against vschema schemas.
// Framework adapters live in the echo and gin submodules.
package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/vschema"
	"github.com/reoring/vschema/source"
)

// ctxKeyValue is the context key for the validated body.
type ctxKeyValue struct{}

// ContextWithValue attaches a validated body to the context.
func ContextWithValue(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, validated{value: v})
}

// ValueFromContext retrieves the validated body from context.
func ValueFromContext(ctx context.Context) (any, bool) {
	v, ok := ctx.Value(ctxKeyValue{}).(validated)
	return v.value, ok
}

// validated boxes the body so that a nil body is still found.
type validated struct{ value any }

// Opt configures body validation.
type Opt struct {
	Source source.Opt
	// Name is the root of reported property paths.
	Name string
	// Logger receives failed validations; nil disables logging.
	Logger *slog.Logger
}

// DefaultOpt returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Bodies are capped at 1 MiB
func DefaultOpt() Opt {
	return Opt{
		Source: source.Opt{MaxBytes: 1 << 20, RejectDuplicateKeys: true},
		Name:   "body",
	}
}

func resolve(opts []Opt) Opt {
	if len(opts) == 0 || opts[len(opts)-1] == (Opt{}) {
		return DefaultOpt()
	}
	return opts[len(opts)-1]
}

// ValidateBody decodes a JSON body and validates it against schema. A zero
// Opt means DefaultOpt. A non-zero Opt is used as is: fields left unset keep
// their zero value, so the size cap and duplicate-key rejection are off
// unless Source sets them. Start from DefaultOpt to change a single field.
func ValidateBody(body io.Reader, schema any, opts ...Opt) (any, error) {
	opt := resolve(opts)
	doc, err := source.DecodeReader(body, source.FormatJSON, opt.Source)
	if err != nil {
		if opt.Logger != nil {
			opt.Logger.Warn("request body rejected", "err", err)
		}
		return nil, err
	}
	return vschema.Validate(schema, doc, vschema.ValidateOpt{Name: opt.Name, Logger: opt.Logger})
}

// ErrorPayload shapes a ValidateBody error for JSON responses: validation
// failures become {"issues": [...]}, anything else {"error": "..."}.
func ErrorPayload(err error) map[string]any {
	var (
		ve  *vschema.ValidatorError
		agg *vschema.AggregateError
	)
	if errors.As(err, &ve) || errors.As(err, &agg) {
		return map[string]any{"issues": vschema.Flatten(err)}
	}
	if iss, ok := vschema.AsIssues(err); ok {
		return map[string]any{"issues": iss}
	}
	return map[string]any{"error": err.Error()}
}

// ValidateJSON returns net/http middleware that validates the request body
// against schema, stores the produced value in the request context, and
// answers 400 with ErrorPayload on failure.
func ValidateJSON(schema any, opts ...Opt) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := ValidateBody(r.Body, schema, opts...)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, ErrorPayload(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), v)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
