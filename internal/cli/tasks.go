package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/omni"
	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

var (
	listLimit    int
	todayFlagged bool
	forecastDays int

	searchProject     string
	searchTag         string
	searchFlagged     bool
	searchAvailable   bool
	searchCompleted   bool
	searchRequireDue  bool
	searchDueBefore   string
	searchDueAfter    string
	searchDeferBefore string
	searchDeferAfter  string
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List inbox tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := client.ListInbox(cmd.Context(), listLimit)
		if err != nil {
			return err
		}
		printer.Tasks(list)
		return nil
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "List tasks due or becoming available today",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := client.ListToday(cmd.Context(), ops.TodayOptions{
			Limit:          listLimit,
			IncludeFlagged: todayFlagged,
		})
		if err != nil {
			return err
		}
		printer.Tasks(list)
		return nil
	},
}

var flaggedCmd = &cobra.Command{
	Use:   "flagged",
	Short: "List flagged tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := client.ListFlagged(cmd.Context(), listLimit)
		if err != nil {
			return err
		}
		printer.Tasks(list)
		return nil
	},
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show tasks due in the coming days, grouped by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.Forecast(cmd.Context(), forecastDays)
		if err != nil {
			return err
		}
		printer.Forecast(res)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks by text and filters",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := omni.FilterSet{
			Project:          searchProject,
			Tag:              searchTag,
			Flagged:          searchFlagged,
			Available:        searchAvailable,
			IncludeCompleted: searchCompleted,
			RequireDue:       searchRequireDue,
		}
		if len(args) == 1 {
			filter.Query = args[0]
		}

		var err error
		if filter.DueBefore, err = parseBound(searchDueBefore, "--due-before"); err != nil {
			return err
		}
		if filter.DueAfter, err = parseBound(searchDueAfter, "--due-after"); err != nil {
			return err
		}
		if filter.DeferBefore, err = parseBound(searchDeferBefore, "--defer-before"); err != nil {
			return err
		}
		if filter.DeferAfter, err = parseBound(searchDeferAfter, "--defer-after"); err != nil {
			return err
		}

		list, err := client.Search(cmd.Context(), filter, listLimit)
		if err != nil {
			return err
		}
		printer.Tasks(list)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id|name>",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.GetTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printer.TaskDetail(res)
		return nil
	},
}

func parseBound(expr, flag string) (*time.Time, error) {
	if expr == "" {
		return nil, nil
	}
	t, ok := omni.ResolveDate(expr, time.Now())
	if !ok {
		return nil, &invalidDateError{flag: flag, expr: expr}
	}
	return &t, nil
}

type invalidDateError struct {
	flag string
	expr string
}

func (e *invalidDateError) Error() string {
	return "invalid date expression for " + e.flag + ": " + e.expr
}

func init() {
	for _, cmd := range []*cobra.Command{inboxCmd, todayCmd, flaggedCmd, searchCmd} {
		cmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results")
	}
	todayCmd.Flags().BoolVar(&todayFlagged, "flagged", false, "Include flagged tasks")
	forecastCmd.Flags().IntVar(&forecastDays, "days", 0, "Forecast horizon in days (default from config, 7)")

	searchCmd.Flags().StringVar(&searchProject, "project", "", "Restrict to one project (ID or name)")
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "Restrict to one tag (ID or name)")
	searchCmd.Flags().BoolVar(&searchFlagged, "flagged", false, "Only flagged tasks")
	searchCmd.Flags().BoolVar(&searchAvailable, "available", false, "Only available tasks")
	searchCmd.Flags().BoolVar(&searchCompleted, "completed", false, "Include completed tasks")
	searchCmd.Flags().BoolVar(&searchRequireDue, "require-due", false, "Exclude tasks without a due date")
	searchCmd.Flags().StringVar(&searchDueBefore, "due-before", "", "Due date upper bound")
	searchCmd.Flags().StringVar(&searchDueAfter, "due-after", "", "Due date lower bound")
	searchCmd.Flags().StringVar(&searchDeferBefore, "defer-before", "", "Defer date upper bound")
	searchCmd.Flags().StringVar(&searchDeferAfter, "defer-after", "", "Defer date lower bound")
}
