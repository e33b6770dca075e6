package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

// logger receives diagnostics on stderr; results go to stdout.
var logger = log.NewNopLogger()

var rootCmd = &cobra.Command{
	Use:   "sparsectl",
	Short: "Inspect and compose sparse memory images",
	Long: `sparsectl loads raw binary images at given addresses into a sparse
memory and reports on or rewrites the result. Images are given as
file@address, the address in decimal or 0x hexadecimal; a bare file name
is loaded at address 0. Later images overwrite earlier ones where they
overlap.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug diagnostics")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func setupLogger() {
	allow := level.AllowInfo()
	switch {
	case quiet:
		allow = level.AllowError()
	case verbose:
		allow = level.AllowDebug()
	}

	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	logger = level.NewFilter(l, allow)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		level.Error(logger).Log("msg", "command failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints a result line unless in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
