package cli

import (
	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

var (
	tagParent    string
	tagAddDryRun bool

	tagModName      string
	tagModHide      bool
	tagModUnhide    bool
	tagModOnHold    bool
	tagModActive    bool
	tagModDryRun    bool
	tagDeleteDryRun bool
	tagTasksLimit   int
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := client.ListTags(cmd.Context())
		if err != nil {
			return err
		}
		printer.Tags(list)
		return nil
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagTasksCmd = &cobra.Command{
	Use:   "tasks <id|name>",
	Short: "List tasks carrying a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := client.TasksByTag(cmd.Context(), args[0], tagTasksLimit)
		if err != nil {
			return err
		}
		printer.Tasks(list)
		return nil
	},
}

var tagAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.AddTag(cmd.Context(), args[0], tagParent, tagAddDryRun)
		if err != nil {
			return err
		}
		printer.Message(res.Message)
		return nil
	},
}

var tagModifyCmd = &cobra.Command{
	Use:   "modify <id|name>",
	Short: "Modify a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := ops.ModifyTagOptions{Name: tagModName, DryRun: tagModDryRun}
		if tagModHide {
			v := true
			opts.Hidden = &v
		}
		if tagModUnhide {
			v := false
			opts.Hidden = &v
		}
		// "On hold" tags refuse next actions.
		if tagModOnHold {
			v := false
			opts.AllowsNextAction = &v
		}
		if tagModActive {
			v := true
			opts.AllowsNextAction = &v
		}

		res, err := client.ModifyTag(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		printer.Message(res.Message)
		return nil
	},
}

var tagDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.DeleteTag(cmd.Context(), args[0], tagDeleteDryRun)
		if err != nil {
			return err
		}
		printer.Mutation(res)
		return nil
	},
}

func init() {
	tagAddCmd.Flags().StringVarP(&tagParent, "parent", "P", "", "Create inside this tag")
	tagAddCmd.Flags().BoolVar(&tagAddDryRun, "dry-run", false, "Preview without writing")

	tagModifyCmd.Flags().StringVar(&tagModName, "name", "", "Rename the tag")
	tagModifyCmd.Flags().BoolVar(&tagModHide, "hide", false, "Hide the tag")
	tagModifyCmd.Flags().BoolVar(&tagModUnhide, "unhide", false, "Unhide the tag")
	tagModifyCmd.Flags().BoolVar(&tagModOnHold, "on-hold", false, "Put the tag on hold")
	tagModifyCmd.Flags().BoolVar(&tagModActive, "active", false, "Make the tag active")
	tagModifyCmd.Flags().BoolVar(&tagModDryRun, "dry-run", false, "Preview without writing")

	tagDeleteCmd.Flags().BoolVar(&tagDeleteDryRun, "dry-run", false, "Preview without writing")

	tagTasksCmd.Flags().IntVar(&tagTasksLimit, "limit", 0, "Maximum results")

	tagCmd.AddCommand(tagTasksCmd, tagAddCmd, tagModifyCmd, tagDeleteCmd)
}
