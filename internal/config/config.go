package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Menu bounds
	MinOperation = 1
	MaxOperation = 7
)

// Config holds all configuration for a pdftidy run.
type Config struct {
	// Directory is the target directory of PDF documents.
	Directory string
	// ReportsDir is where CSV reports are written.
	ReportsDir string
	// Operation is the selected menu operation, 0 when the user should be
	// prompted interactively.
	Operation int
	// AssumeYes skips the confirmation prompt before apply operations.
	AssumeYes bool

	Version     string
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Directory:   currentDir,
		ReportsDir:  currentDir,
		Operation:   0,
		Version:     "1.0.0",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.Directory != "" {
		if expandedPath, err := filepath.Abs(cfg.Directory); err == nil {
			cfg.Directory = expandedPath
		}
	}
	if cfg.ReportsDir != "" {
		if expandedPath, err := filepath.Abs(cfg.ReportsDir); err == nil {
			cfg.ReportsDir = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PDFTIDY")
	viper.AutomaticEnv()

	viper.SetDefault("dir", cfg.Directory)
	viper.SetDefault("reports", cfg.ReportsDir)
	viper.SetDefault("op", cfg.Operation)
	viper.SetDefault("yes", cfg.AssumeYes)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("dir", cfg.Directory, "Directory containing PDF files")
	pflag.String("reports", cfg.ReportsDir, "Directory where CSV reports are written")
	pflag.Int("op", cfg.Operation, "Menu operation 1-7 (0 prompts interactively)")
	pflag.Bool("yes", cfg.AssumeYes, "Skip the confirmation prompt before apply operations")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("reports", pflag.Lookup("reports"))
	_ = viper.BindPFlag("op", pflag.Lookup("op"))
	_ = viper.BindPFlag("yes", pflag.Lookup("yes"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdftidy - standardize filenames and metadata of a directory of PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nOperations:\n")
		fmt.Fprintf(os.Stderr, "  1  Metadata inventory (dry run)\n")
		fmt.Fprintf(os.Stderr, "  2  Date cleanup preflight (dry run)\n")
		fmt.Fprintf(os.Stderr, "  3  Date cleanup (renames files)\n")
		fmt.Fprintf(os.Stderr, "  4  Outlier cleanup (renames files)\n")
		fmt.Fprintf(os.Stderr, "  5  Metadata write preview (dry run)\n")
		fmt.Fprintf(os.Stderr, "  6  Metadata write (modifies documents)\n")
		fmt.Fprintf(os.Stderr, "  7  Metadata field cleanup (modifies documents)\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs                # interactive menu\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs --op=2         # date cleanup preview\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/pdfs --op=3 --yes   # apply without prompting\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDFTIDY_DIR          Target directory\n")
		fmt.Fprintf(os.Stderr, "  PDFTIDY_REPORTS      Reports directory\n")
		fmt.Fprintf(os.Stderr, "  PDFTIDY_OP           Menu operation\n")
		fmt.Fprintf(os.Stderr, "  PDFTIDY_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  PDFTIDY_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Directory = viper.GetString("dir")
	cfg.ReportsDir = viper.GetString("reports")
	cfg.Operation = viper.GetInt("op")
	cfg.AssumeYes = viper.GetBool("yes")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Directory == "" {
		return errors.New("target directory cannot be empty")
	}
	if info, err := os.Stat(c.Directory); err != nil {
		return fmt.Errorf("cannot access target directory %s: %w", c.Directory, err)
	} else if !info.IsDir() {
		return fmt.Errorf("target path is not a directory: %s", c.Directory)
	}

	if c.ReportsDir == "" {
		return errors.New("reports directory cannot be empty")
	}
	// Created up front: an apply run must never mutate files and then fail
	// to write its report.
	if err := os.MkdirAll(c.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("cannot create reports directory %s: %w", c.ReportsDir, err)
	}

	if c.Operation != 0 && (c.Operation < MinOperation || c.Operation > MaxOperation) {
		return fmt.Errorf("operation must be between %d and %d", MinOperation, MaxOperation)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Directory: %s, ReportsDir: %s, Operation: %d, LogLevel: %s, MaxFileSize: %d}",
		c.Directory, c.ReportsDir, c.Operation, c.LogLevel, c.MaxFileSize)
}
