package vschema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/reoring/vschema"
)

func TestRender_Leaf(t *testing.T) {
	_, err := vschema.Validate(vschema.Type[string](), 1)
	got := vschema.Render(err)
	want := strings.Join([]string{
		"[Validator: string] on property (root)",
		"  [Assertion: isSameTypeName]",
		`  "int" is not the same type as "string".`,
	}, "\n")
	if got != want {
		t.Fatalf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_NestedPathsAndConversion(t *testing.T) {
	schema := vschema.Object{"user": vschema.Object{"id": vschema.ID()}}
	_, err := vschema.Validate(schema, map[string]any{"user": map[string]any{"id": "abc"}}, vschema.ValidateOpt{Name: "body"})
	got := vschema.Render(err)
	want := strings.Join([]string{
		"[Validator: ID] on property body.user.id",
		"  [Conversion: toInt]",
		`  "abc" could not be converted to an integer.`,
	}, "\n")
	if got != want {
		t.Fatalf("Render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_TruncatesAggregates(t *testing.T) {
	_, err := vschema.Validate(vschema.Array{vschema.Type[string]()}, []any{1, 2, 3, 4, 5})
	got := vschema.Render(err)
	if n := strings.Count(got, "[Validator: string]"); n != 3 {
		t.Fatalf("shown %d children, want 3:\n%s", n, got)
	}
	if !strings.HasSuffix(got, "[+2 errors]") {
		t.Fatalf("missing truncation marker:\n%s", got)
	}

	_, err = vschema.Validate(vschema.Array{vschema.Type[string]()}, []any{"a", 1, 2, 3, 4})
	if got := vschema.Render(err); !strings.HasSuffix(got, "[+1 error]") {
		t.Fatalf("missing singular marker:\n%s", got)
	}

	all := vschema.Render(err, vschema.RenderOpt{MaxChildren: 10})
	if strings.Contains(all, "[+") || strings.Count(all, "[Validator: string]") != 4 {
		t.Fatalf("MaxChildren ignored:\n%s", all)
	}
}

func TestRender_Options(t *testing.T) {
	_, err := vschema.Validate(vschema.Any("a", 1), true)
	got := vschema.Render(err)
	for _, want := range []string{
		"[Validator: Any] on property (root)",
		"  [Option: 1]",
		"    [Validator: LiteralString] on property (root)",
		"  [Option: 2]",
		"    [Validator: LiteralNumber] on property (root)",
	} {
		if !strings.Contains(got, want+"\n") {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRender_ColorAndPlainErrors(t *testing.T) {
	_, err := vschema.Validate("a", "b")
	if got := vschema.Render(err, vschema.RenderOpt{Color: true}); !strings.Contains(got, "\x1b[") {
		t.Fatalf("no ANSI sequences in colored render: %q", got)
	}
	if got := vschema.Render(err); strings.Contains(got, "\x1b[") {
		t.Fatalf("ANSI sequences in plain render: %q", got)
	}
	if got := vschema.Render(errors.New("boom")); got != "boom" {
		t.Fatalf("Render(plain) = %q", got)
	}
	if got := vschema.Render(nil); got != "" {
		t.Fatalf("Render(nil) = %q", got)
	}
}
