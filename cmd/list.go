package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/citadel/controller"
	"github.com/s0up4200/citadel/rickmorty"
)

var pages int

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List characters page by page",
	Long: `List characters from the catalogue. The first page is always fetched;
--pages keeps loading further pages until the count or the last page is reached.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&pages, "pages", "n", 0, "number of pages to fetch (default browse.pages)")
	addFilterFlags(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter()
	if err != nil {
		return err
	}

	want := cfg.Browse.Pages
	if pages > 0 {
		want = pages
	}

	ctx := cmd.Context()
	ctrl := controller.New(client, logger)
	defer ctrl.Close()

	ctrl.LoadInitial(ctx)
	for fetched := 1; fetched < want; fetched++ {
		state := ctrl.State()
		if state.Status == controller.StatusError || !state.HasMore() {
			break
		}
		ctrl.LoadMore(ctx)
	}

	state := ctrl.State()
	if err := stateError(state); err != nil {
		return err
	}

	characters, err := filters.Apply(ctx, f, state.Items)
	if err != nil {
		return err
	}

	fmt.Print(formatter.FormatCharacterList(characters, rickmorty.FormatOptions{
		ShowDetails: cfg.Display.ShowDetails,
	}))

	if state.Status == controller.StatusError {
		fmt.Fprintf(os.Stderr, "\n%s\n", state.ErrorMessage)
	} else if state.HasMore() {
		fmt.Printf("\nMore characters available (%d loaded). Use --pages to fetch more.\n", len(state.Items))
	}

	return nil
}

// stateError turns a blocking controller error into a command error
func stateError(state controller.State) error {
	if state.Status == controller.StatusError && state.Blocking {
		return errors.New(state.ErrorMessage)
	}
	return nil
}
