package main

import (
	"fmt"

	"github.com/spf13/cobra"

	js "github.com/reoring/goshape/jsonschema"
)

func newJSONSchemaCmd(a *app) *cobra.Command {
	var name string
	var verify bool
	cmd := &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the JSON Schema (2020-12) projection of a schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSchema(name)
			if err != nil {
				return err
			}
			doc, err := s.JSONSchema()
			if err != nil {
				return fmt.Errorf("project schema: %w", err)
			}
			if verify {
				if _, err := js.Compile(doc); err != nil {
					return fmt.Errorf("verify: %w", err)
				}
				a.logger.Info().Str("schema", name).Msg("projection compiles")
			}
			b, err := js.Marshal(doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Schema name in the document (default: the root schema)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Compile the projection with a JSON Schema validator before printing")
	return cmd
}
