// Command pip-ingester fetches, validates and normalizes PIP identity
// documents from the command line, and can serve the pipeline over
// HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pi "github.com/pipid/ingester"
)

var (
	flagConfig    string
	flagJSON      bool
	flagTimeoutMs int
	flagNoVerify  bool
	flagRaw       bool
)

var rootCmd = &cobra.Command{
	Use:           "pip-ingester",
	Short:         "Ingest Portable Identity Profile documents",
	Version:       pi.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON output")
	rootCmd.PersistentFlags().IntVar(&flagTimeoutMs, "timeout", 0, "fetch timeout in milliseconds (0 = config default)")

	fetchCmd.Flags().BoolVar(&flagNoVerify, "no-validate", false, "skip schema validation")
	fetchCmd.Flags().BoolVar(&flagRaw, "raw", false, "skip default normalization")

	rootCmd.AddCommand(validateCmd, normalizeCmd, fetchCmd, batchCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
