package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/citadel/config"
	"github.com/s0up4200/citadel/filter"
	"github.com/s0up4200/citadel/rickmorty"
)

// annotationTUI marks commands that own the terminal
const annotationTUI = "tui"

var (
	cfgFile   string
	logLevel  string
	cfg       *config.Config
	logger    zerolog.Logger
	logFile   io.Closer
	client    *rickmorty.Client
	filters   *filter.Manager
	formatter = rickmorty.NewConsoleFormatter()

	// Command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "citadel",
	Short: "Browse and search characters from the Rick and Morty API",
	Long: `citadel is a CLI for the Rick and Morty character API. It lists the
paginated character catalogue, searches characters by name, shows detail
cards and offers an interactive browser with debounced search.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
}

// SetVersion sets the version string reported by --version
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(presetsCmd)
}

// initializeApp loads the configuration and builds the logger, API client and
// filter presets shared by all commands.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	var closer io.Closer
	logger, closer, err = setupLogger(cfg.Logging, cmd.Annotations[annotationTUI] == "true")
	if err != nil {
		return err
	}
	logFile = closer

	client, err = rickmorty.NewClient(cfg.API.BaseURL, logger,
		rickmorty.WithTimeout(cfg.API.Timeout),
		rickmorty.WithUserAgent(cfg.API.UserAgent),
		rickmorty.WithConcurrency(cfg.API.Concurrency),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterPresets(presetsFromConfig(cfg.Filter)); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Int("presets", len(cfg.Filter.Presets)).
		Msg("Initialized")

	return nil
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if filters != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = filters.Close(ctx)
	}
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

// setupLogger configures the zerolog logger. Output goes to logging.file when
// set; otherwise to stderr, or nowhere when quiet is set.
func setupLogger(cfg config.LoggingConfig, quiet bool) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	var (
		out    io.Writer = os.Stderr
		closer io.Closer
		color  = cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	)

	switch {
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer, color = f, f, false
	case quiet:
		return zerolog.Nop(), nil, nil
	}

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger(), closer, nil
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger(), closer, nil
}

func presetsFromConfig(fc config.FilterConfig) []filter.Preset {
	presets := make([]filter.Preset, 0, len(fc.Presets))
	for name, p := range fc.Presets {
		presets = append(presets, filter.Preset{
			Name:        name,
			Expression:  p.Expression,
			Description: p.Description,
		})
	}
	return presets
}

// resolveFilter picks the filter for this run.
// Priority: --filter or --preset (mutually exclusive) > default expression > none.
func resolveFilter() (filter.CompiledFilter, error) {
	expression := filterExpr
	if expression == "" && preset == "" {
		expression = cfg.Filter.DefaultExpression
	}

	f, err := filters.Resolve(expression, preset)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if f != nil {
		logger.Info().Str("filter", f.Expression()).Msg("Filtering characters")
	}
	return f, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	cmd.MarkFlagsMutuallyExclusive("filter", "preset")
}
