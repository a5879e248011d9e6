package cli

import (
	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

var (
	reviewLimit    int
	reviewAll      bool
	reviewedDryRun bool

	qeName    string
	qeNote    string
	qeDue     string
	qeDefer   string
	qeFlagged bool
	qeSave    bool
	qeDryRun  bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List projects due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.ListReview(cmd.Context(), ops.ReviewOptions{
			Limit: reviewLimit,
			All:   reviewAll,
		})
		if err != nil {
			return err
		}
		printer.Review(res)
		return nil
	},
}

var reviewedCmd = &cobra.Command{
	Use:   "reviewed <id|name>",
	Short: "Mark a project as reviewed now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.MarkReviewed(cmd.Context(), args[0], reviewedDryRun)
		if err != nil {
			return err
		}
		printer.Message(res.Message)
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Trigger a database sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.Sync(cmd.Context())
		if err != nil {
			return err
		}
		printer.Mutation(res)
		return nil
	},
}

var qeCmd = &cobra.Command{
	Use:   "qe",
	Short: "Open the Quick Entry panel, optionally pre-filled",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.QuickEntry(cmd.Context(), ops.QuickEntryOptions{
			Name:     qeName,
			Note:     qeNote,
			Due:      qeDue,
			Defer:    qeDefer,
			Flagged:  qeFlagged,
			AutoSave: qeSave,
			DryRun:   qeDryRun,
		})
		if err != nil {
			return err
		}
		printer.Message(res.Message)
		return nil
	},
}

var perspectivesCmd = &cobra.Command{
	Use:   "perspectives",
	Short: "List perspective names",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.ListPerspectives(cmd.Context())
		if err != nil {
			return err
		}
		printer.Perspectives(res)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether OmniFocus is running",
	RunE: func(cmd *cobra.Command, args []string) error {
		if client.IsAlive(cmd.Context()) {
			printer.Message("OmniFocus is running")
			return nil
		}
		printer.Message("OmniFocus is not running")
		return nil
	},
}

func init() {
	reviewCmd.Flags().IntVar(&reviewLimit, "limit", 0, "Maximum results")
	reviewCmd.Flags().BoolVar(&reviewAll, "all", false, "Include projects not yet due for review")
	reviewedCmd.Flags().BoolVar(&reviewedDryRun, "dry-run", false, "Preview without writing")

	qeCmd.Flags().StringVar(&qeName, "name", "", "Pre-fill the task name")
	qeCmd.Flags().StringVarP(&qeNote, "note", "n", "", "Pre-fill the note")
	qeCmd.Flags().StringVarP(&qeDue, "due", "d", "", "Pre-fill the due date")
	qeCmd.Flags().StringVar(&qeDefer, "defer", "", "Pre-fill the defer date")
	qeCmd.Flags().BoolVarP(&qeFlagged, "flagged", "f", false, "Pre-set the flag")
	qeCmd.Flags().BoolVar(&qeSave, "save", false, "Save immediately instead of leaving the panel open")
	qeCmd.Flags().BoolVar(&qeDryRun, "dry-run", false, "Preview without opening the panel")
}
