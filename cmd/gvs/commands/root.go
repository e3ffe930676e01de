// Package commands provides the CLI commands for the go-valueset tool.
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-valueset/internal/config"
	"github.com/l3aro/go-valueset/internal/log"
)

// StartupError marks failures detected before any analysis runs: bad
// arguments, missing input files and unsupported extensions.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string { return e.Err.Error() }
func (e *StartupError) Unwrap() error { return e.Err }

func startupErrorf(format string, args ...any) error {
	return &StartupError{Err: fmt.Errorf(format, args...)}
}

// IsStartupError reports whether err is or wraps a [StartupError].
func IsStartupError(err error) bool {
	var se *StartupError
	return errors.As(err, &se)
}

// startupArgs marks argument validation failures as startup errors.
func startupArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &StartupError{Err: err}
		}
		return nil
	}
}

var (
	appConfig *config.Config
	logger    log.Logger = log.Default()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gvs",
	Short: "go-valueset - Integer value-set analysis for Java and Go methods",
	Long: `go-valueset computes, for every method of a source file, the set of integer
constants each local variable may hold when the method exits.

Commands:
  analyze     Print the possible values of every variable at method exit
  cfg         Print the control flow graph of a method
  init        Create a configuration file interactively
  doctor      Check configuration, frontends and cache

Use "gvs [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return &StartupError{Err: fmt.Errorf("loading config: %w", err)}
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return &StartupError{Err: err}
		}

		appConfig = cfg
		logger = log.New(log.LoggerConfig{
			Level:      level,
			JSONOutput: cfg.JSONLogs,
			Output:     cmd.ErrOrStderr(),
		})
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Errors raised by the root command itself, such as an unknown subcommand,
// are startup errors.
func Execute() error {
	cmd, err := RootCmd.ExecuteC()
	if err != nil && cmd == RootCmd && !IsStartupError(err) {
		return &StartupError{Err: err}
	}
	return err
}

func init() {
	RootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	RootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &StartupError{Err: err}
	})
}
