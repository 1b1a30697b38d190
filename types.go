package vschema

import "log/slog"

// ValidateOpt configures a Validate call. When several are passed the last
// one wins.
type ValidateOpt struct {
	// Name is the root of every reported property path ("" by default).
	Name string
	// Logger receives the rendered trace of a failed validation. Nil
	// disables reporting.
	Logger *slog.Logger
	// Render controls the trace written to Logger.
	Render RenderOpt
}

// RenderOpt configures Render.
type RenderOpt struct {
	// Color styles the trace markers with ANSI colors.
	Color bool
	// MaxChildren caps the children shown per aggregate error (default 3).
	MaxChildren int
}

const defaultMaxChildren = 3

func lastValidateOpt(opts []ValidateOpt) ValidateOpt {
	if len(opts) == 0 {
		return ValidateOpt{}
	}
	return opts[len(opts)-1]
}

func lastRenderOpt(opts []RenderOpt) RenderOpt {
	var opt RenderOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxChildren <= 0 {
		opt.MaxChildren = defaultMaxChildren
	}
	return opt
}
