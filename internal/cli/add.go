package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

var (
	addProject  string
	addNote     string
	addDue      string
	addDefer    string
	addFlagged  bool
	addTags     []string
	addEstimate int
	addDryRun   bool

	outlineFolder       string
	outlineCreateFolder string
	outlineSequential   bool
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a task, or many tasks piped one per line",
	Long: `Add a task to the inbox or a project. With no name argument and
piped input, every non-empty line becomes a task sharing the same flags.
Lines starting with # are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := ops.AddTaskOptions{
			Project:          addProject,
			Note:             addNote,
			Due:              addDue,
			Defer:            addDefer,
			Flagged:          addFlagged,
			Tags:             addTags,
			EstimatedMinutes: addEstimate,
			DryRun:           addDryRun,
		}

		if len(args) == 1 {
			res, err := client.AddTask(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			printer.Created(res)
			return nil
		}

		names, err := readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no task name given and nothing piped on stdin")
		}
		res, err := client.AddTasks(cmd.Context(), names, opts)
		if err != nil {
			return err
		}
		printer.BulkCreated(res)
		return nil
	},
}

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Create projects with tasks from a piped outline",
	Long: `Read a markdown-style outline from stdin and create its projects
and tasks:

  - Project Name
    - Task 1
    - Task 2
  - Another Project
    - Task A`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		projects := parseOutline(string(text))
		res, err := client.AddOutline(cmd.Context(), projects, ops.OutlineOptions{
			Folder:       outlineFolder,
			CreateFolder: outlineCreateFolder,
			Sequential:   outlineSequential,
			DryRun:       addDryRun,
		})
		if err != nil {
			return err
		}
		if jsonOut {
			printer.JSON(res)
			return nil
		}
		printer.Message(res.Message)
		for _, e := range res.Errors {
			printer.Error(e.Ident + ": " + e.Err)
		}
		return nil
	},
}

// readLines splits piped input into task names, dropping blanks and
// comment lines.
func readLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}

var outlineItemRe = regexp.MustCompile(`^(\s*)[-*]\s+(.+)$`)

// parseOutline turns a markdown-style list into projects with tasks.
// Top-level items start projects; indented items become tasks under the
// most recent project. Non-list lines and comments are ignored.
func parseOutline(text string) []ops.OutlineProject {
	var projects []ops.OutlineProject
	var current *ops.OutlineProject

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		m := outlineItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		indent := len(m[1])
		content := strings.TrimSpace(m[2])

		if indent == 0 {
			if current != nil {
				projects = append(projects, *current)
			}
			current = &ops.OutlineProject{Name: content}
		} else if current != nil {
			current.Tasks = append(current.Tasks, content)
		}
	}
	if current != nil {
		projects = append(projects, *current)
	}
	return projects
}

func init() {
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "Add to a project (default inbox)")
	addCmd.Flags().StringVarP(&addNote, "note", "n", "", "Task note")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (today, tomorrow, +3d, 2026-01-15)")
	addCmd.Flags().StringVar(&addDefer, "defer", "", "Defer date, same grammar as --due")
	addCmd.Flags().BoolVarP(&addFlagged, "flagged", "f", false, "Mark as flagged")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Attach a tag (repeatable)")
	addCmd.Flags().IntVarP(&addEstimate, "estimate", "e", 0, "Estimated minutes")
	addCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Preview without creating")

	outlineCmd.Flags().StringVar(&outlineFolder, "folder", "", "Place projects in an existing folder")
	outlineCmd.Flags().StringVar(&outlineCreateFolder, "create-folder", "", "Create this folder and place projects in it")
	outlineCmd.Flags().BoolVar(&outlineSequential, "sequential", false, "Create sequential projects")
	outlineCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Preview without creating")

	addCmd.AddCommand(outlineCmd)
}
