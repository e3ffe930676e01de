// Package main implements the go-valueset CLI (gvs).
// It prints, for every method of Java and Go source files, the integer
// values each variable may hold when the method exits.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/l3aro/go-valueset/cmd/gvs/commands"
)

var (
	version   = "dev"
	buildTime = ""
)

// Exit codes.
const (
	exitOK      = 0
	exitStartup = 1 // bad arguments, missing file, unsupported extension
	exitFailure = 2
)

func main() {
	commands.RootCmd.Flags().BoolP("version", "v", false, "Print version information")
	commands.RootCmd.SetVersionTemplate(`gvs version {{.Version}}
`)
	commands.RootCmd.Version = version
	if buildTime != "" {
		commands.RootCmd.Version += " (built " + buildTime + ")"
	}

	os.Exit(exitCode(os.Stderr, commands.Execute()))
}

// exitCode reports err on w and maps it to the process exit status.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	if commands.IsStartupError(err) {
		return exitStartup
	}
	return exitFailure
}
