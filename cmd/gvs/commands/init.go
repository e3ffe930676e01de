package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/l3aro/go-valueset/internal/config"
	"github.com/l3aro/go-valueset/internal/healthcheck"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gvs configuration interactively",
	Long: `Guides you through setting up gvs configuration step by step.
Creates a config file with analysis parallelism, result cache and logging settings.`,
	Args: startupArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

// initAnswers holds the raw form values.
type initAnswers struct {
	Scope    string // "project" or "global"
	Workers  string
	Cache    bool
	CacheDir string
	LogLevel string
}

func defaultAnswers(cfg *config.Config) initAnswers {
	return initAnswers{
		Scope:    "project",
		Workers:  strconv.Itoa(cfg.Workers),
		Cache:    cfg.Cache,
		CacheDir: cfg.CacheDir,
		LogLevel: cfg.LogLevel,
	}
}

func validateWorkers(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("workers must be a number")
	}
	if n < 1 || n > config.MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d", config.MaxWorkers)
	}
	return nil
}

// buildConfig turns form answers into a validated config and the path it
// should be saved to.
func (a initAnswers) buildConfig() (*config.Config, string, error) {
	if err := validateWorkers(a.Workers); err != nil {
		return nil, "", err
	}
	workers, _ := strconv.Atoi(strings.TrimSpace(a.Workers))

	cfg := config.DefaultConfig()
	cfg.Workers = workers
	cfg.Cache = a.Cache
	if dir := strings.TrimSpace(a.CacheDir); dir != "" {
		cfg.CacheDir = dir
	}
	cfg.LogLevel = a.LogLevel

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config validation failed: %w", err)
	}

	configPath := config.ProjectConfigFilePath()
	if a.Scope == "global" {
		configPath = config.GlobalConfigFilePath()
	}

	return cfg, configPath, nil
}

func runInit(cmd *cobra.Command) error {
	answers := defaultAnswers(appConfig)

	// === SECTION 1: Scope and analysis ===
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should the configuration be saved?").
				Options(
					huh.NewOption("This project (./.gvs/config.yaml)", "project"),
					huh.NewOption("Global (~/.gvs/config.yaml)", "global"),
				).
				Value(&answers.Scope),
			huh.NewInput().
				Title("Workers").
				Description("Methods of one file analyzed in parallel").
				Placeholder(answers.Workers).
				Validate(validateWorkers).
				Value(&answers.Workers),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// === SECTION 2: Cache ===
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Result cache").
				Description("Reuse results for files whose content has not changed?").
				Affirmative("Yes").
				Negative("No").
				Value(&answers.Cache),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	if answers.Cache {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cache directory").
					Placeholder(answers.CacheDir).
					Value(&answers.CacheDir),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	}

	// === SECTION 3: Logging ===
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions(config.LogLevels...)...).
				Value(&answers.LogLevel),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	cfg, configPath, err := answers.buildConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printConfigPreview(out, cfg, configPath)

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(out, "Configuration saved to: %s\n", configPath)

	// === SECTION 4: Health Check ===
	fmt.Fprintln(out, "\n=== Running Health Check ===")

	loadedCfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading saved config: %w", err)
	}

	result, err := healthcheck.Check(cmd.Context(), loadedCfg, configPath, configPath)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfig Scope: %s\n", result.SavedScope)
	if result.SavedScope == "global" {
		fmt.Fprintf(out, "Config Path: %s\n", configPath)
	} else {
		absPath, _ := filepath.Abs(configPath)
		fmt.Fprintf(out, "Config Path: %s\n", absPath)
	}
	displayDoctorResult(out, result)

	fmt.Fprintln(out, "\n=== Initialization Complete ===")
	return nil
}

func printConfigPreview(w io.Writer, cfg *config.Config, configPath string) {
	fmt.Fprintln(w, "\n=== Configuration Preview ===")
	fmt.Fprintf(w, "Config path: %s\n", configPath)
	fmt.Fprintf(w, "Workers: %d\n", cfg.Workers)
	if cfg.Cache {
		fmt.Fprintf(w, "Cache: %s (max %d entries)\n", cfg.CacheDir, cfg.CacheMaxEntries)
	} else {
		fmt.Fprintln(w, "Cache: disabled")
	}
	fmt.Fprintf(w, "Log level: %s\n", cfg.LogLevel)
	fmt.Fprintln(w, "================================")
}

func init() {
	RootCmd.AddCommand(initCmd)
}
