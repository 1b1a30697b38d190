package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/vschema"
	"github.com/reoring/vschema/schemadoc"
)

func newJSONSchemaCmd(root *rootFlags) *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the JSON Schema projection of a schema document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := root.logger(cmd)
			if err != nil {
				return err
			}
			schema, err := schemadoc.LoadFile(schemaPath, schemadoc.LoadOpt{Source: root.sourceOpt()})
			if err != nil {
				return fmt.Errorf("load schema: %w", err)
			}
			out, err := vschema.JSONSchema(schema)
			if err != nil {
				return err
			}
			log.Debug("schema exported", "path", schemaPath)
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "schema document (.json, .yaml)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
