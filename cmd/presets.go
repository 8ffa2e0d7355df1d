package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List configured filter presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func runPresets(cmd *cobra.Command, args []string) error {
	presets := filters.Presets()
	if len(presets) == 0 {
		fmt.Println("No filter presets configured.")
		return nil
	}

	fmt.Printf("Filter presets (%d):\n", len(presets))
	for _, p := range presets {
		fmt.Printf("• %s\n", p.Name)
		if p.Description != "" {
			fmt.Printf("  %s\n", p.Description)
		}
		fmt.Printf("  %s\n", p.Expression)
	}

	if cfg.Filter.DefaultExpression != "" {
		fmt.Printf("\nDefault filter: %s\n", cfg.Filter.DefaultExpression)
	}

	return nil
}
