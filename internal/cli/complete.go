package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

// The three task state mutations share one shape: a single argument runs
// one write, several run the sequential batch with per-item errors.

var mutateDryRun bool

var completeCmd = &cobra.Command{
	Use:   "complete <id|name>...",
	Short: "Mark tasks complete",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskMutation(cmd, args,
			client.CompleteTask, client.CompleteTasks)
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop <id|name>...",
	Short: "Drop tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskMutation(cmd, args,
			client.DropTask, client.DropTasks)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id|name>...",
	Short: "Permanently delete tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskMutation(cmd, args,
			client.DeleteTask, client.DeleteTasks)
	},
}

func runTaskMutation(
	cmd *cobra.Command,
	args []string,
	single func(ctx context.Context, ident string, dryRun bool) (*ops.MutationResult, error),
	batch func(ctx context.Context, idents []string, dryRun bool) (*ops.BatchResult, error),
) error {
	if len(args) == 1 {
		res, err := single(cmd.Context(), args[0], mutateDryRun)
		if err != nil {
			return err
		}
		printer.Mutation(res)
		return nil
	}
	res, err := batch(cmd.Context(), args, mutateDryRun)
	if err != nil {
		return err
	}
	printer.Batch(res)
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{completeCmd, dropCmd, deleteCmd} {
		cmd.Flags().BoolVar(&mutateDryRun, "dry-run", false, "Preview without writing")
	}
}
