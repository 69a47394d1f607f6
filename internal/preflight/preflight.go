package preflight

import (
	"context"
	"strings"

	"brandsort/internal/config"
	"brandsort/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Fatal marks a failure that must stop the run.
	Fatal  bool
	Detail string
}

// RunAll executes the checks for organizing root with cfg. A blank root falls
// back to the configured default root.
func RunAll(ctx context.Context, cfg *config.Config, root string) []Result {
	if strings.TrimSpace(root) == "" && cfg != nil {
		root = cfg.Organizer.DefaultRoot
	}

	var results []Result

	rootResult := CheckRoot(root)
	results = append(results, rootResult)
	if rootResult.Passed {
		results = append(results, CheckDirectoryAccess("Root access", root))
		results = append(results, CheckFreeSpace("Root free space", root, MinFreeBytes))
	}

	if cfg != nil && cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	_ = ctx
	return results
}

// FirstFatal returns an ErrRootNotFound-tagged error for the first fatal
// failure in results, or nil.
func FirstFatal(results []Result) error {
	for _, r := range results {
		if r.Fatal && !r.Passed {
			return services.Wrap(services.ErrRootNotFound, "preflight", r.Name, r.Detail, nil)
		}
	}
	return nil
}

// Warnings returns the non-fatal failures in results.
func Warnings(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed && !r.Fatal {
			out = append(out, r)
		}
	}
	return out
}
