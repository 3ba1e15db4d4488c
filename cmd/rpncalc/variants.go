package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newVariantsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "Print the available variants as YAML",
		Long: `Print every variant available to --variant, including those loaded
from --config, in the format --config accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := loadVariants(o.config)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			// Maps are encoded with sorted keys.
			doc := map[string]interface{}{"variants": vs}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encoding variants: %w", err)
			}
			return enc.Close()
		},
	}
}
