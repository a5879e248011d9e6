package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

var (
	projFolder     string
	projNote       string
	projDue        string
	projDefer      string
	projSequential bool
	projFlagged    bool
	projTasks      []string
	projDryRun     bool

	projModName       string
	projModNote       string
	projModDue        string
	projModDefer      string
	projModClearDue   bool
	projModClearDefer bool
	projModSequential bool
	projModParallel   bool
	projModFlag       bool
	projModUnflag     bool
	projModStatus     string
	projModDryRun     bool
	projStatusDryRun  bool
	projMoveDryRun    bool

	projTasksLimit     int
	projTasksCompleted bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := client.ListProjects(cmd.Context())
		if err != nil {
			return err
		}
		printer.Projects(list)
		return nil
	},
}

var projectCmd = &cobra.Command{
	Use:   "project <id|name>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.GetProject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printer.ProjectDetail(res)
		return nil
	},
}

var projectTasksCmd = &cobra.Command{
	Use:   "tasks <id|name>",
	Short: "List a project's tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := client.GetProject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		list, err := client.ProjectTasks(cmd.Context(), proj.Project.ID, projTasksLimit, projTasksCompleted)
		if err != nil {
			return err
		}
		printer.ProjectTasks(proj.Project, list)
		return nil
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.AddProject(cmd.Context(), args[0], ops.AddProjectOptions{
			Folder:     projFolder,
			Note:       projNote,
			Due:        projDue,
			Defer:      projDefer,
			Sequential: projSequential,
			Flagged:    projFlagged,
			Tasks:      projTasks,
			DryRun:     projDryRun,
		})
		if err != nil {
			return err
		}
		printer.ProjectDetail(res)
		return nil
	},
}

var projectModifyCmd = &cobra.Command{
	Use:   "modify <id|name>",
	Short: "Modify a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := ops.ModifyProjectOptions{
			Name:       projModName,
			Due:        projModDue,
			Defer:      projModDefer,
			ClearDue:   projModClearDue,
			ClearDefer: projModClearDefer,
			Status:     projModStatus,
			DryRun:     projModDryRun,
		}
		if cmd.Flags().Changed("note") {
			opts.Note = &projModNote
		}
		if projModSequential && projModParallel {
			return fmt.Errorf("--sequential and --parallel are mutually exclusive")
		}
		if projModSequential {
			v := true
			opts.Sequential = &v
		}
		if projModParallel {
			v := false
			opts.Sequential = &v
		}
		if projModFlag && projModUnflag {
			return fmt.Errorf("--flag and --unflag are mutually exclusive")
		}
		if projModFlag {
			v := true
			opts.Flagged = &v
		}
		if projModUnflag {
			v := false
			opts.Flagged = &v
		}

		res, err := client.ModifyProject(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		printer.ProjectDetail(res)
		return nil
	},
}

var projectStatusCmd = &cobra.Command{
	Use:   "status <id|name> <active|on-hold|done|dropped>",
	Short: "Set a project's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.SetProjectStatus(cmd.Context(), args[0], args[1], projStatusDryRun)
		if err != nil {
			return err
		}
		printer.ProjectDetail(res)
		return nil
	},
}

var projectMoveCmd = &cobra.Command{
	Use:   "move <id|name> [folder]",
	Short: "Move a project to a folder, or to the root with no folder",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := ""
		if len(args) == 2 {
			folder = args[1]
		}
		res, err := client.MoveProject(cmd.Context(), args[0], folder, projMoveDryRun)
		if err != nil {
			return err
		}
		printer.ProjectDetail(res)
		return nil
	},
}

func init() {
	projectAddCmd.Flags().StringVarP(&projFolder, "folder", "F", "", "Place in a folder (ID or name)")
	projectAddCmd.Flags().StringVarP(&projNote, "note", "n", "", "Project note")
	projectAddCmd.Flags().StringVarP(&projDue, "due", "d", "", "Due date")
	projectAddCmd.Flags().StringVar(&projDefer, "defer", "", "Defer date")
	projectAddCmd.Flags().BoolVar(&projSequential, "sequential", false, "Tasks complete in order")
	projectAddCmd.Flags().BoolVarP(&projFlagged, "flagged", "f", false, "Mark as flagged")
	projectAddCmd.Flags().StringSliceVarP(&projTasks, "task", "t", nil, "Seed a task in the new project (repeatable)")
	projectAddCmd.Flags().BoolVar(&projDryRun, "dry-run", false, "Preview without writing")

	projectModifyCmd.Flags().StringVar(&projModName, "name", "", "Rename the project")
	projectModifyCmd.Flags().StringVarP(&projModNote, "note", "n", "", "Replace the note")
	projectModifyCmd.Flags().StringVarP(&projModDue, "due", "d", "", "Set due date")
	projectModifyCmd.Flags().StringVar(&projModDefer, "defer", "", "Set defer date")
	projectModifyCmd.Flags().BoolVar(&projModClearDue, "clear-due", false, "Remove the due date")
	projectModifyCmd.Flags().BoolVar(&projModClearDefer, "clear-defer", false, "Remove the defer date")
	projectModifyCmd.Flags().BoolVar(&projModSequential, "sequential", false, "Tasks complete in order")
	projectModifyCmd.Flags().BoolVar(&projModParallel, "parallel", false, "Tasks complete in any order")
	projectModifyCmd.Flags().BoolVar(&projModFlag, "flag", false, "Set the flag")
	projectModifyCmd.Flags().BoolVar(&projModUnflag, "unflag", false, "Clear the flag")
	projectModifyCmd.Flags().StringVar(&projModStatus, "status", "", "active, on-hold, done, or dropped")
	projectModifyCmd.Flags().BoolVar(&projModDryRun, "dry-run", false, "Preview without writing")

	projectStatusCmd.Flags().BoolVar(&projStatusDryRun, "dry-run", false, "Preview without writing")
	projectMoveCmd.Flags().BoolVar(&projMoveDryRun, "dry-run", false, "Preview without writing")

	projectTasksCmd.Flags().IntVar(&projTasksLimit, "limit", 0, "Maximum results")
	projectTasksCmd.Flags().BoolVar(&projTasksCompleted, "completed", false, "Include completed tasks")

	projectCmd.AddCommand(projectTasksCmd, projectAddCmd, projectModifyCmd, projectStatusCmd, projectMoveCmd)
}
