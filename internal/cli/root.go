// Package cli wires the operation catalog into a cobra command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/bridge"
	"github.com/2b3pro/omnifocus-mcp-cli/internal/config"
	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
	"github.com/2b3pro/omnifocus-mcp-cli/internal/output"
)

var (
	jsonOut  bool
	quietOut bool

	cfg     *config.Config
	client  *ops.Client
	printer *output.Printer

	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "of",
		Short: "of - OmniFocus from the command line",
		Long: `of talks to a running OmniFocus application through its scripting
interface: list and search tasks, create and modify entities, and serve the
same operations to MCP clients.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initRuntime,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Emit JSON envelopes")
	rootCmd.PersistentFlags().BoolVarP(&quietOut, "quiet", "q", false, "Emit bare IDs only")
}

// initRuntime loads configuration and builds the shared client and printer.
func initRuntime(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	client = ops.NewClient(cfg.NewRunner()).
		WithDefaults(cfg.Defaults.TaskLimit, cfg.Defaults.ForecastDays)

	format := cfg.Output.Format
	if jsonOut {
		format = output.FormatJSON
	}
	if quietOut {
		format = output.FormatQuiet
	}
	printer = output.NewPrinter(cmd.OutOrStdout(), format, cfg.Output.Color)
	return nil
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(inboxCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(flaggedCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(modifyCmd)
	rootCmd.AddCommand(flagCmd)
	rootCmd.AddCommand(unflagCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(reorderCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(reviewedCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(qeCmd)
	rootCmd.AddCommand(perspectivesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// ExitCode maps an Execute failure to a process exit code. A stopped
// application is distinguished so scripts can branch on it.
func ExitCode(err error) int {
	if errors.Is(err, bridge.ErrNotRunning) {
		return 2
	}
	return 1
}
