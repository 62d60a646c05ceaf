package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show which build steps a run would perform",
	Long: `Show which build steps a run with the same flags would perform, without
building anything.

Planning only checks which artifacts exist and which boxes are registered.
When the OS version still has to be read from the installer app, names that
depend on it are shown as pending.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   Full plan as YAML
  -o json   Full plan as JSON`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := newFormatter(outputFormat)
		if err != nil {
			return err
		}

		p, err := a.planner.Plan(cmd.Context(), opts)
		if err != nil {
			return err
		}

		result, err := formatter.FormatPlan(p)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Print(result)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, yaml, json)")
	planCmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit table headers")
}
