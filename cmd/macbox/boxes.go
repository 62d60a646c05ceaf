package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var boxesCmd = &cobra.Command{
	Use:   "boxes",
	Short: "List boxes registered with Vagrant",
	Long: `List the names of all boxes registered with Vagrant.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   YAML document with a boxes list
  -o json   JSON object with a boxes array`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := newFormatter(outputFormat)
		if err != nil {
			return err
		}

		names, err := a.registry.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list boxes: %w", err)
		}

		result, err := formatter.FormatBoxes(names)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Print(result)
		return nil
	},
}

func init() {
	boxesCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, yaml, json)")
	boxesCmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit table headers")
}
