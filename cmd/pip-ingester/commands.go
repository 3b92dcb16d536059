package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/config"
	"github.com/pipid/ingester/engine"
	"github.com/pipid/ingester/ingest"
	"github.com/pipid/ingester/normalize"
	"github.com/pipid/ingester/worker"
)

// loadOptions resolves config file plus command-line overrides into
// functional options.
func loadOptions() ([]pi.Option, *config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	opts := cfg.Options()
	if flagTimeoutMs > 0 {
		opts = append(opts, pi.WithTimeout(time.Duration(flagTimeoutMs)*time.Millisecond))
	}
	return opts, cfg, nil
}

// readInput reads a document from a file path, or stdin when the path
// is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>... | -",
	Short: "Validate local identity documents against the PIP schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, _, err := loadOptions()
		if err != nil {
			return err
		}
		validator := engine.New(opts...)

		invalid := 0
		for _, path := range args {
			raw, err := readInput(path)
			if err != nil {
				return err
			}

			result := validator.Validate(cmd.Context(), raw)
			printResult(path, result)
			if !result.Valid {
				invalid++
			}
			result.Release()
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d document(s) invalid", invalid, len(args))
		}
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file> | -",
	Short: "Fill documented defaults into a local identity document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(args[0])
		if err != nil {
			return err
		}

		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		normalized, err := normalize.Apply(value)
		if err != nil {
			return err
		}
		return printJSON(normalized)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Ingest an identity document from an HTTPS URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, _, err := loadOptions()
		if err != nil {
			return err
		}
		if flagNoVerify {
			opts = append(opts, pi.WithValidate(false))
		}
		if flagRaw {
			opts = append(opts, pi.WithNormalize(false))
		}

		identity, err := ingest.New(opts...).Ingest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(identity)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <url>...",
	Short: "Ingest several identity URLs concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, cfg, err := loadOptions()
		if err != nil {
			return err
		}

		ing := ingest.New(opts...)
		pool := worker.NewPool(ing.Ingest, cfg.Ingest.MaxConcurrent)
		for _, url := range args {
			pool.Submit(worker.NewJob(url))
		}
		batch := pool.CloseAndWait()

		printBatch(batch)
		if batch.Succeeded == 0 {
			return pi.ErrAllFailed
		}
		return nil
	},
}
