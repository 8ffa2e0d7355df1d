package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/citadel/controller"
	"github.com/s0up4200/citadel/rickmorty"
)

var errBlankQuery = errors.New("search needs a non-blank NAME")

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search NAME",
	Short: "Search characters by name",
	Long:  `Search the catalogue for characters whose name contains NAME.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	addFilterFlags(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return errBlankQuery
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	logger.Info().Str("query", query).Msg("Searching characters")

	ctx := cmd.Context()
	ctrl := controller.New(client, logger)
	defer ctrl.Close()

	ctrl.SearchNow(ctx, query)

	state := ctrl.State()
	if state.ErrorKind == controller.ErrorEmptyResult {
		fmt.Println(state.ErrorMessage)
		return nil
	}
	if state.Status == controller.StatusError {
		return errors.New(state.ErrorMessage)
	}

	characters, err := filters.Apply(ctx, f, state.Items)
	if err != nil {
		return err
	}

	fmt.Print(formatter.FormatCharacterList(characters, rickmorty.FormatOptions{
		ShowDetails: cfg.Display.ShowDetails,
	}))

	return nil
}
