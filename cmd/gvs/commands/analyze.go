package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-valueset/pkg/cache"
	"github.com/l3aro/go-valueset/pkg/frontend"
	"github.com/l3aro/go-valueset/pkg/report"
	"github.com/l3aro/go-valueset/pkg/runner"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|dir>",
	Short: "Print the integer values each variable may hold at method exit",
	Long: `Analyzes every method of a Java or Go file, or of every supported file below a
directory, and prints for each variable the integer constants it may hold
when the method exits.

Example output:
  Method: compute
  x: [1, 2]`,
	Args: startupArgs(cobra.ExactArgs(1)),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return &StartupError{Err: err}
	}
	if !info.IsDir() && !frontend.Supported(path) {
		return startupErrorf("%w: %s (supported languages: %v)", frontend.ErrUnsupportedExtension, path, frontend.Languages())
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = appConfig.Workers
	}

	var c *cache.LRUCache
	if appConfig.Cache && !noCache {
		c = cache.New(cache.Options{MaxEntries: appConfig.CacheMaxEntries})
		if err := cache.LoadFromFile(c, appConfig.CacheFile()); err != nil {
			logger.Warn("ignoring unreadable cache", "path", appConfig.CacheFile(), "err", err)
			c.Clear()
		}
	}

	r := runner.New(runner.Options{Workers: workers, Cache: c, Logger: logger})
	files, err := r.AnalyzePath(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", path, err)
	}

	if c != nil {
		stats := c.Stats()
		logger.Debug("cache stats", "entries", stats.Length, "hits", stats.HitCount, "misses", stats.MissCount)
		if err := cache.PersistToFile(c, appConfig.CacheFile()); err != nil {
			logger.Warn("failed to persist cache", "path", appConfig.CacheFile(), "err", err)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if !info.IsDir() && len(files) == 1 {
			return report.WriteJSON(out, files[0])
		}
		return report.WriteJSON(out, files)
	}
	return report.WriteText(out, files...)
}

func init() {
	analyzeCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	analyzeCmd.Flags().IntP("workers", "w", 0, "Methods analyzed in parallel (default from config)")
	analyzeCmd.Flags().Bool("no-cache", false, "Do not read or write the result cache")
	RootCmd.AddCommand(analyzeCmd)
}
