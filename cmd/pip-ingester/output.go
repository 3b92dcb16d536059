package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/worker"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(name string, result *pi.Result) {
	if flagJSON {
		_ = printJSON(result.Clone())
		return
	}

	if result.Valid {
		fmt.Printf("%s: valid\n", name)
		return
	}

	fmt.Printf("%s: INVALID (%d error(s))\n", name, result.ErrorCount())
	for _, issue := range result.Issues {
		fmt.Printf("  %s\n", issue)
	}
}

func printBatch(batch *worker.BatchResult) {
	if flagJSON {
		out := make([]map[string]any, 0, len(batch.Results))
		for _, r := range batch.Results {
			entry := map[string]any{
				"id":  r.ID,
				"url": r.URL,
			}
			if r.Err != nil {
				entry["error"] = r.Err.Error()
			} else {
				entry["identity"] = r.Identity
			}
			out = append(out, entry)
		}
		_ = printJSON(out)
		return
	}

	for _, r := range batch.Results {
		if r.Err != nil {
			fmt.Printf("%s: FAILED: %v\n", r.URL, r.Err)
			continue
		}
		fmt.Printf("%s: ok (%s)\n", r.URL, r.Duration.Round(time.Millisecond))
	}
	fmt.Printf("%d succeeded, %d failed\n", batch.Succeeded, batch.Failed)
}
