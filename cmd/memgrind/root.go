package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joshuapare/firstfit/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	logDir   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "memgrind",
	Short: "Stress and inspect the first-fit arena allocator",
	Long: `memgrind drives the first-fit arena allocator through the classic
workloads A-E, timing each batch, and can replay scripted alloc/free
sequences while dumping the block chain after every step.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Close()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&logDir, "log-dir", "", "Write structured logs to daily files in this directory")
	rootCmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "info", "Minimum log level (debug, info, warn, error)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// initLogging routes the global logger to --log-dir, or to stderr when
// verbose, and discards it otherwise.
func initLogging() error {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	switch {
	case logDir != "":
		return logger.Init(logger.Options{Enabled: true, LogDir: logDir, Level: level})
	case verbose && !quiet:
		return logger.Init(logger.Options{Enabled: true, Writer: os.Stderr, Level: level})
	default:
		return logger.Init(logger.Options{Enabled: false})
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
