package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-valueset/internal/config"
	"github.com/l3aro/go-valueset/internal/healthcheck"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on configuration, frontends and cache",
	Long: `Checks the configuration, runs a probe program through every language
frontend and verifies that the result cache can be written and read.`,
	Args: startupArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := healthcheck.Check(cmd.Context(), appConfig, "", effectiveConfigPath())
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		displayDoctorResult(cmd.OutOrStdout(), result)

		if result.HasError() {
			return fmt.Errorf("health check failed: one or more components are not working")
		}

		return nil
	},
}

// effectiveConfigPath returns the highest-priority config file that exists,
// or "" when only defaults apply.
func effectiveConfigPath() string {
	if fileExists(config.ProjectConfigFilePath()) {
		return config.ProjectConfigFilePath()
	}
	if fileExists(config.GlobalConfigFilePath()) {
		return config.GlobalConfigFilePath()
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func displayDoctorResult(w io.Writer, result *healthcheck.HealthCheckResult) {
	if result.EffectivePath == "" {
		fmt.Fprintln(w, "Using config: built-in defaults")
	} else {
		fmt.Fprintf(w, "Using config: %s (%s)\n", result.EffectivePath, result.EffectiveScope)
	}

	fmt.Fprintln(w, "\nFrontends:")
	for _, s := range result.Frontends {
		printComponentStatus(w, s)
	}

	fmt.Fprintln(w, "\nCache:")
	printComponentStatus(w, result.Cache)
}

func printComponentStatus(w io.Writer, s healthcheck.ComponentStatus) {
	fmt.Fprintf(w, "  %s %s: %s", formatStatusIcon(s.Status), s.Name, s.Status)
	if s.Detail != "" {
		fmt.Fprintf(w, " (%s)", s.Detail)
	}
	fmt.Fprintln(w)
	if s.Error != "" && s.Status == "error" {
		fmt.Fprintf(w, "    Error: %s\n", s.Error)
	}
}

func formatStatusIcon(status string) string {
	switch status {
	case "ready":
		return "✓"
	case "disabled":
		return "-"
	case "error":
		return "✗"
	default:
		return "?"
	}
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}
