package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"facetcrawl/lib/scrapers/directory"
	"facetcrawl/lib/telemetry"
	"facetcrawl/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
)

var (
	config   Config
	tel      telemetry.Telemetry
	closeLog = func() error { return nil }
)

func init() {
	configPath = rootCmd.PersistentFlags().String(
		"config",
		serviceutil.GetEnvString("FACETCRAWL_CONFIG", DefaultConfigPath),
		"The json5 config file to read, a <name>.local.json5 next to it overrides it.",
	)
	rootCmd.PersistentFlags().String("log-level", "", "The lowest severity printed to the console: debug, info, notice, warning, error or critical (default from config).")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug logs to the console, same as --log-level debug.")
}

var rootCmd = &cobra.Command{
	Use:   "facetcrawl",
	Short: "facetcrawl crawls every location x category listing of a directory site.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("read config %s: %w", *configPath, err)
		}
		err = applyFlags(cmd, &config)
		if err != nil {
			return err
		}
		if *verbose {
			config.LogLevel = telemetry.SeverityDebug.String()
		}
		err = config.Validate()
		if err != nil {
			return err
		}

		_, closeLog, err = telemetry.InitSlog(telemetry.SlogOptions{
			ConsoleLevel: config.ConsoleLevel(),
			LogFile:      config.LogFilePath(),
		})
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}

		tel, err = telemetry.Setup(cmd.Context(), "facetcrawl", config.Telemetry)
		if err != nil {
			slog.Warn("failed to setup telemetry, continuing without it", "err", err)
		}
		if tel.MetricsEnabled() {
			telemetry.InstrumentPerfStats(cmd.Context(), time.Second*5)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		err := tel.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
		err = closeLog()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	},
}

// applyFlags copies every override flag the command has and the user set into cfg.
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("output") {
		cfg.Output, err = flags.GetString("output")
	}
	if err == nil && flags.Changed("workers") {
		cfg.Workers, err = flags.GetInt("workers")
	}
	if err == nil && flags.Changed("limit") {
		cfg.PaginationLimit, err = flags.GetInt("limit")
	}
	if err == nil && flags.Changed("retries") {
		cfg.Retries, err = flags.GetInt("retries")
	}
	if err == nil && flags.Changed("log-level") {
		cfg.LogLevel, err = flags.GetString("log-level")
	}
	return err
}

func newClient() *directory.Client {
	opts, err := config.ClientOptions()
	if err != nil {
		serviceutil.Fatal("invalid client config", err)
	}
	client, err := directory.NewClient(opts)
	if err != nil {
		serviceutil.Fatal("failed to initialize directory client", err)
	}
	return client
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
