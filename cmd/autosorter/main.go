package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/autosorter/internal/config"
	"github.com/fenilsonani/autosorter/internal/daemon"
	"github.com/fenilsonani/autosorter/internal/logging"
	"github.com/fenilsonani/autosorter/internal/reporter"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	watchDir   string
	interval   int
	verbose    bool
	outputFmt  string
	outputFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "autosorter",
	Short: "Keep your Downloads folder sorted",
	Long: `autosorter watches a folder (your Downloads folder by default) and moves
every file it finds into a category subfolder such as Pictures, Documents or
Audio, based on the file's extension. Files no category claims go to Others.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDaemon,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sort the folder periodically until interrupted",
	Long: `Runs the sorter in the foreground: one pass over the folder, then a pause
of the configured interval, repeated until SIGINT or SIGTERM is received.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Sort the folder once and report what moved",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := reporter.ParseFormat(outputFmt)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, closer, err := logging.NewFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		defer closer.Close()

		result := daemon.NewPoller(cfg, logger).Pass()

		// Generate report
		if outputFile != "" {
			if err := reporter.SaveToFile(result, outputFile, format); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to: %s\n", outputFile)
			return nil
		}

		rptr := reporter.New(cmd.OutOrStdout(), format)
		if err := rptr.Report(result); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		return nil
	},
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closer.Close()

	d, err := daemon.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return d.Start(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&watchDir, "dir", "", "folder to sort (default: your Downloads folder)")
	rootCmd.PersistentFlags().IntVar(&interval, "interval", 0, "seconds between passes")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log at debug level")

	// Once command flags
	onceCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, table, json, yaml)")
	onceCmd.Flags().StringVar(&outputFile, "file", "", "save report to file")

	// Config command flags
	configCmd.Flags().BoolVar(&initConfig, "init", false, "write the default configuration file")

	// Add commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(onceCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveConfigPath returns the --config path, or the default location
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

// loadConfig reads the config file and applies command-line overrides. The
// returned config is validated and not modified afterwards.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		abs, err := filepath.Abs(watchDir)
		if err != nil {
			return nil, fmt.Errorf("invalid --dir: %w", err)
		}
		cfg.WatchDir = abs
	}
	if flags.Changed("interval") {
		cfg.PollInterval = interval
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
