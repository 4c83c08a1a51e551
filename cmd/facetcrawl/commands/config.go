package commands

import (
	"fmt"
	"log/slog"
	"time"

	"facetcrawl/lib/configutil"
	"facetcrawl/lib/restyutil"
	"facetcrawl/lib/scrapers/directory"
	"facetcrawl/lib/telemetry"
	"facetcrawl/services/facetcrawl"
)

const DefaultConfigPath = "facetcrawl.json5"

type Config struct {
	ListingUrl       string              `json:"listing_url"`
	FacetsUrl        string              `json:"facets_url"`
	PaginationLimit  int                 `json:"pagination_limit"`
	Workers          int                 `json:"workers"`
	Timeout          string              `json:"timeout"`
	Retries          int                 `json:"retries"`
	Output           string              `json:"output"`
	LogFile          string              `json:"log_file"`
	LogLevel         string              `json:"log_level"`
	UserAgent        string              `json:"user_agent"`
	CloudflareBypass bool                `json:"cloudflare_bypass"`
	DebugHttpDir     string              `json:"debug_http_dir"`
	Selectors        directory.Selectors `json:"selectors"`
	Telemetry        telemetry.Config    `json:"telemetry"`
}

func DefaultConfig() Config {
	return Config{
		ListingUrl:      directory.DefaultListingUrl,
		FacetsUrl:       directory.DefaultFacetsUrl,
		PaginationLimit: facetcrawl.DefaultPaginationLimit,
		Workers:         1,
		Timeout:         directory.DefaultTimeout.String(),
		Output:          "medi_docs.json",
		LogFile:         "medi_logs.log",
		LogLevel:        telemetry.SeverityInfo.String(),
		UserAgent:       directory.DefaultUserAgent,
		Selectors:       directory.DefaultSelectors,
	}
}

// LoadConfig reads the config file at `path` (and its .local override),
// fields the file leaves out keep their default.
func LoadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, DefaultConfig())
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.PaginationLimit < 1 {
		return fmt.Errorf("pagination_limit must be at least 1, got %d", c.PaginationLimit)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}
	_, err := telemetry.ParseSeverity(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	_, err = c.TimeoutDuration()
	return err
}

// ConsoleLevel is the slog level of log_level, an invalid value falls back to info.
func (c Config) ConsoleLevel() slog.Level {
	sev, _ := telemetry.ParseSeverity(c.LogLevel)
	return sev.Level()
}

func (c Config) TimeoutDuration() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return timeout, nil
}

// LogFilePath is empty when file logging is turned off with "-".
func (c Config) LogFilePath() string {
	if c.LogFile == "-" {
		return ""
	}
	return c.LogFile
}

func (c Config) ClientOptions() (directory.ClientOptions, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return directory.ClientOptions{}, err
	}
	opts := directory.ClientOptions{
		ListingUrl:       c.ListingUrl,
		FacetsUrl:        c.FacetsUrl,
		Timeout:          timeout,
		Retries:          c.Retries,
		UserAgent:        c.UserAgent,
		CloudflareBypass: c.CloudflareBypass,
		Selectors:        c.Selectors,
	}
	if c.DebugHttpDir != "" {
		output, err := restyutil.NewFilesystemOutput(c.DebugHttpDir)
		if err != nil {
			return directory.ClientOptions{}, fmt.Errorf("debug_http_dir: %w", err)
		}
		opts.DebugOutput = output
	}
	return opts, nil
}
