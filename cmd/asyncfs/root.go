package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs"
	"github.com/arthur-debert/asyncfs/pkg/asyncfs/config"
	"github.com/arthur-debert/asyncfs/pkg/asyncfs/filesystem"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagRoot     string
	flagTimeout  time.Duration
	flagLogLevel string
	flagConfig   string

	appConfig config.Config
	logger    zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asyncfs",
	Short: "An asynchronous filesystem task runner",
	Long: `asyncfs submits filesystem operations (existence checks, metadata
reads, directory listings, create/delete/copy/move, and batches thereof)
to a concurrent task engine and waits for their results. Paths are
resolved relative to the configured root directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		appConfig = cfg

		// Flags override the settings file.
		if cmd.Flags().Changed("root") {
			appConfig.Root = flagRoot
		}
		if cmd.Flags().Changed("log-level") {
			appConfig.LogLevel = flagLogLevel
		}

		level, err := asyncfs.LogLevelFromString(appConfig.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", appConfig.LogLevel, err)
		}
		logger = asyncfs.NewLogger(os.Stderr, level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", ".", "Root directory filesystem operations are resolved against")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-task timeout (default: from config, 30s)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file (default: user config directory)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newExistsCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newSizeCommand())
	rootCmd.AddCommand(newModTimeCommand())
	rootCmd.AddCommand(newMkdirCommand())
	rootCmd.AddCommand(newRemoveCommand())
	rootCmd.AddCommand(newCopyCommand())
	rootCmd.AddCommand(newMoveCommand())
	rootCmd.AddCommand(newBatchCommand())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("asyncfs version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// newManager builds the task engine over the configured root.
func newManager() (*asyncfs.Manager, error) {
	fsys := filesystem.NewOSFileSystem(appConfig.Root)
	opts := []asyncfs.Option{asyncfs.WithLogger(logger)}
	if appConfig.DefaultTimeoutSecs > 0 {
		opts = append(opts, asyncfs.WithDefaultTimeout(appConfig.DefaultTimeout()))
	}
	return asyncfs.NewManager(fsys, opts...)
}

// taskTimeout resolves the per-task timeout from the flag, falling back
// to the manager default.
func taskTimeout() time.Duration {
	return flagTimeout
}
