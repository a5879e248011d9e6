package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

var (
	modName       string
	modNote       string
	modDue        string
	modDefer      string
	modDueBy      string
	modDeferBy    string
	modClearDue   bool
	modClearDefer bool
	modFlag       bool
	modUnflag     bool
	modEstimate   int
	modAddTags    []string
	modRemoveTags []string
	modProject    string
	modInbox      bool
	modDryRun     bool

	reorderBefore string
	reorderAfter  string
	reorderFirst  bool
	reorderLast   bool
	reorderDryRun bool
)

var modifyCmd = &cobra.Command{
	Use:   "modify <id|name>",
	Short: "Modify a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := ops.ModifyTaskOptions{
			Name:        modName,
			Due:         modDue,
			Defer:       modDefer,
			DueBy:       modDueBy,
			DeferBy:     modDeferBy,
			ClearDue:    modClearDue,
			ClearDefer:  modClearDefer,
			AddTags:     modAddTags,
			RemoveTags:  modRemoveTags,
			Project:     modProject,
			MoveToInbox: modInbox,
			DryRun:      modDryRun,
		}
		if cmd.Flags().Changed("note") {
			opts.Note = &modNote
		}
		if cmd.Flags().Changed("estimate") {
			opts.EstimatedMinutes = &modEstimate
		}
		if modFlag && modUnflag {
			return fmt.Errorf("--flag and --unflag are mutually exclusive")
		}
		if modFlag {
			v := true
			opts.Flagged = &v
		}
		if modUnflag {
			v := false
			opts.Flagged = &v
		}

		res, err := client.ModifyTask(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		printer.TaskDetail(res)
		return nil
	},
}

var flagCmd = &cobra.Command{
	Use:   "flag <id|name>",
	Short: "Flag a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := true
		res, err := client.ModifyTask(cmd.Context(), args[0], ops.ModifyTaskOptions{Flagged: &v})
		if err != nil {
			return err
		}
		printer.TaskDetail(res)
		return nil
	},
}

var unflagCmd = &cobra.Command{
	Use:   "unflag <id|name>",
	Short: "Unflag a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := false
		res, err := client.ModifyTask(cmd.Context(), args[0], ops.ModifyTaskOptions{Flagged: &v})
		if err != nil {
			return err
		}
		printer.TaskDetail(res)
		return nil
	},
}

var reorderCmd = &cobra.Command{
	Use:   "reorder <id|name>",
	Short: "Move a task among its siblings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := ops.ReorderOptions{Before: reorderBefore, After: reorderAfter, DryRun: reorderDryRun}
		switch {
		case reorderFirst:
			opts.Position = "first"
		case reorderLast:
			opts.Position = "last"
		}
		if opts.Before == "" && opts.After == "" && opts.Position == "" {
			return fmt.Errorf("give one of --before, --after, --first, --last")
		}

		res, err := client.ReorderTask(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		printer.Mutation(res)
		return nil
	},
}

func init() {
	modifyCmd.Flags().StringVar(&modName, "name", "", "Rename the task")
	modifyCmd.Flags().StringVarP(&modNote, "note", "n", "", "Replace the note")
	modifyCmd.Flags().StringVarP(&modDue, "due", "d", "", "Set due date")
	modifyCmd.Flags().StringVar(&modDefer, "defer", "", "Set defer date")
	modifyCmd.Flags().StringVar(&modDueBy, "due-by", "", "Shift due date by [+-]N[dwm]")
	modifyCmd.Flags().StringVar(&modDeferBy, "defer-by", "", "Shift defer date by [+-]N[dwm]")
	modifyCmd.Flags().BoolVar(&modClearDue, "clear-due", false, "Remove the due date")
	modifyCmd.Flags().BoolVar(&modClearDefer, "clear-defer", false, "Remove the defer date")
	modifyCmd.Flags().BoolVar(&modFlag, "flag", false, "Set the flag")
	modifyCmd.Flags().BoolVar(&modUnflag, "unflag", false, "Clear the flag")
	modifyCmd.Flags().IntVarP(&modEstimate, "estimate", "e", 0, "Estimated minutes")
	modifyCmd.Flags().StringSliceVar(&modAddTags, "add-tag", nil, "Add a tag (repeatable)")
	modifyCmd.Flags().StringSliceVar(&modRemoveTags, "remove-tag", nil, "Remove a tag (repeatable)")
	modifyCmd.Flags().StringVarP(&modProject, "project", "p", "", "Move to a project")
	modifyCmd.Flags().BoolVar(&modInbox, "inbox", false, "Move to the inbox")
	modifyCmd.Flags().BoolVar(&modDryRun, "dry-run", false, "Preview without writing")

	reorderCmd.Flags().StringVar(&reorderBefore, "before", "", "Place before this task")
	reorderCmd.Flags().StringVar(&reorderAfter, "after", "", "Place after this task")
	reorderCmd.Flags().BoolVar(&reorderFirst, "first", false, "Place first among siblings")
	reorderCmd.Flags().BoolVar(&reorderLast, "last", false, "Place last among siblings")
	reorderCmd.Flags().BoolVar(&reorderDryRun, "dry-run", false, "Preview without writing")
}
