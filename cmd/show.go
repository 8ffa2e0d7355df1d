package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/citadel/rickmorty"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show ID [ID...]",
	Short: "Show detail cards for characters",
	Long:  `Fetch one or more characters by id and print a detail card for each.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	characters, err := client.GetCharacters(cmd.Context(), ids)
	if err != nil {
		if errors.Is(err, rickmorty.ErrNotFound) {
			return fmt.Errorf("character not found: %w", err)
		}
		return err
	}

	for i, c := range characters {
		if i > 0 {
			fmt.Println(strings.Repeat("-", 40))
		}
		fmt.Print(formatter.FormatCharacterDetail(c))
	}

	return nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid character id: %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
