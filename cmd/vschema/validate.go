package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/vschema"
	"github.com/reoring/vschema/schemadoc"
)

type validateFlags struct {
	schema string
	input  string
	format string
	name   string
	color  string
	issues bool
}

func newValidateCmd(root *rootFlags) *cobra.Command {
	f := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an input document against a schema document",
		Long: `Validate loads the schema document, validates the input against it and
prints the validated value as JSON. On failure it prints the error trace
(or the flattened issues with --issues) and exits with status 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, root, f)
		},
	}
	cmd.Flags().StringVar(&f.schema, "schema", "", "schema document (.json, .yaml)")
	cmd.Flags().StringVar(&f.input, "input", "-", "input document, - for stdin")
	cmd.Flags().StringVar(&f.format, "format", "json", "stdin format (json, yaml)")
	cmd.Flags().StringVar(&f.name, "name", "", "root name used in property paths")
	cmd.Flags().StringVar(&f.color, "color", "auto", "color the error trace (auto, always, never)")
	cmd.Flags().BoolVar(&f.issues, "issues", false, "print failures as a JSON list of issues")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func runValidate(cmd *cobra.Command, root *rootFlags, f *validateFlags) error {
	log, err := root.logger(cmd)
	if err != nil {
		return err
	}
	color, err := useColor(f.color, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	schema, err := schemadoc.LoadFile(f.schema, schemadoc.LoadOpt{Source: root.sourceOpt()})
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	log.Debug("schema loaded", "path", f.schema, "kind", vschema.Classify(schema).String())

	input, err := readDocument(cmd, f.input, f.format, root.sourceOpt())
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	out, verr := vschema.Validate(schema, input, vschema.ValidateOpt{Name: f.name})
	if verr == nil {
		log.Info("input is valid", "input", f.input)
		return writeJSON(cmd.OutOrStdout(), out)
	}

	iss := vschema.Flatten(verr)
	log.Info("input is invalid", "input", f.input, "issues", len(iss))
	if f.issues {
		if err := writeJSON(cmd.OutOrStdout(), iss); err != nil {
			return err
		}
		return errInvalidInput
	}
	fmt.Fprintln(cmd.OutOrStdout(), vschema.Render(verr, vschema.RenderOpt{Color: color}))
	return errInvalidInput
}
