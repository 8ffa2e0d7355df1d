package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/citadel/controller"
	"github.com/s0up4200/citadel/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse characters interactively",
	Long: `Open an interactive browser over the character catalogue. Scrolling to the
bottom loads the next page, / searches by name and enter opens a detail card.
Logs are discarded unless logging.file is set.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	nav := &tui.Navigator{}

	ctrl := controller.New(client, logger,
		controller.WithSearchDelay(cfg.Browse.SearchDebounce),
		controller.WithNavigator(nav.Open),
	)
	defer ctrl.Close()

	return tui.Run(cmd.Context(), ctrl, client, nav, logger)
}
