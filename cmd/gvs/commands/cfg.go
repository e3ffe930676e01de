package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-valueset/pkg/frontend"
	"github.com/l3aro/go-valueset/pkg/report"
	"github.com/l3aro/go-valueset/pkg/runner"
)

// cfgCmd represents the cfg command
var cfgCmd = &cobra.Command{
	Use:   "cfg <file> <method>",
	Short: "Print the control flow graph of a method",
	Long: `Builds the control flow graph the value-set analysis runs on for one method.
Methods are named as the frontend names them: "name" for Java methods and Go
functions, "Recv.name" for Go methods.`,
	Args: startupArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]
		methodName := args[1]

		info, err := os.Stat(filePath)
		if err != nil {
			return &StartupError{Err: err}
		}
		if info.IsDir() {
			return startupErrorf("path is a directory, expected a file: %s", filePath)
		}
		if !frontend.Supported(filePath) {
			return startupErrorf("%w: %s", frontend.ErrUnsupportedExtension, filePath)
		}

		g, err := runner.New(runner.Options{Logger: logger}).Graph(cmd.Context(), filePath, methodName)
		if err != nil {
			return fmt.Errorf("extracting CFG: %w", err)
		}

		cfgInfo := g.Describe()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			return report.WriteJSON(cmd.OutOrStdout(), cfgInfo)
		}
		return report.WriteGraph(cmd.OutOrStdout(), cfgInfo)
	},
}

func init() {
	cfgCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	RootCmd.AddCommand(cfgCmd)
}
