package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to the character API",
	Long:  `Test the connection to the API and display basic information.`,
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

func runPing(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", client.BaseURL())

	ctx := cmd.Context()
	endpoints, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	page, err := client.FirstPage(ctx)
	if err != nil {
		return fmt.Errorf("failed to get characters: %w", err)
	}

	fmt.Printf("\nAPI Statistics:\n")
	fmt.Printf("- Total characters: %d\n", page.Info.Count)
	fmt.Printf("- Pages: %d\n", page.Info.Pages)

	if len(endpoints) > 0 {
		fmt.Printf("\nAvailable endpoints:\n")
		for _, name := range slices.Sorted(maps.Keys(endpoints)) {
			fmt.Printf("  • %s (%s)\n", name, endpoints[name])
		}
	}

	return nil
}
