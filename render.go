package vschema

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Render formats an error tree as an indented trace, one level per nested
// validator. Aggregates show at most opt.MaxChildren children followed by
// a "[+N errors]" marker.
func Render(err error, opts ...RenderOpt) string {
	if err == nil {
		return ""
	}
	opt := lastRenderOpt(opts)
	r := &renderer{opt: opt, profile: termenv.Ascii}
	if opt.Color {
		r.profile = termenv.ANSI
	}
	r.write(err, 0)
	return strings.TrimRight(r.b.String(), "\n")
}

type renderer struct {
	b       strings.Builder
	opt     RenderOpt
	profile termenv.Profile
}

func (r *renderer) style(s, color string, bold bool) string {
	st := r.profile.String(s)
	if color != "" {
		st = st.Foreground(r.profile.Color(color))
	}
	if bold {
		st = st.Bold()
	}
	return st.String()
}

// block writes msg with every line indented by depth levels.
func (r *renderer) block(depth int, msg string) {
	pad := strings.Repeat("  ", depth)
	for _, line := range strings.Split(msg, "\n") {
		r.b.WriteString(pad)
		r.b.WriteString(line)
		r.b.WriteByte('\n')
	}
}

func (r *renderer) leaf(depth int, marker, color string, value any, detail string) {
	r.block(depth, r.style(marker, color, false)+"\n"+r.style(fmt.Sprintf("%s %s.", stringify(value, true), detail), "", true))
}

func (r *renderer) write(err error, depth int) {
	switch e := err.(type) {
	case *AggregateError:
		shown, more := e.Errors, 0
		if len(shown) > r.opt.MaxChildren {
			more = len(shown) - r.opt.MaxChildren
			shown = shown[:r.opt.MaxChildren]
		}
		for _, child := range shown {
			r.write(child, depth)
		}
		if more > 0 {
			suffix := ""
			if more > 1 {
				suffix = "s"
			}
			r.block(depth, r.style(fmt.Sprintf("[+%d error%s]", more, suffix), "9", false))
		}
	case *ValidatorError:
		r.block(depth, r.style("[Validator: "+e.Validator+"]", "12", false)+" on property "+r.style(displayPath(e.Path), "9", false))
		if e.Cause != nil {
			r.write(e.Cause, depth+1)
		}
	case *NotMatchAnyError:
		for i, child := range e.Errors {
			r.block(depth, r.style(fmt.Sprintf("[Option: %d]", i+1), "13", false))
			r.write(child, depth+1)
		}
	case *ConversionError:
		r.leaf(depth, "[Conversion: "+e.Converter+"]", "11", e.Value, e.Detail)
	case *AssertionError:
		r.leaf(depth, "[Assertion: "+e.Assertion+"]", "10", e.Value, e.Detail)
	case Issues:
		for _, it := range e {
			r.block(depth, displayPath(it.Path)+": "+it.Message)
		}
	default:
		r.block(depth, err.Error())
	}
}
