package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jonathan/resource-manager/internal/observability"
	"github.com/spf13/cobra"
)

// emit writes v as indented JSON with --json, otherwise hands a Printer to human.
func emit(cmd *cobra.Command, v any, human func(p *observability.Printer)) error {
	out := cmd.OutOrStdout()
	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}
	human(observability.NewPrinter(out).WithLimit(opts.limit))
	return nil
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}
