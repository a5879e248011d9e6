package cli

import (
	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

var (
	folderParent    string
	folderAddDryRun bool

	folderModName   string
	folderModNote   string
	folderModHide   bool
	folderModUnhide bool
	folderModDryRun bool
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := client.ListFolders(cmd.Context())
		if err != nil {
			return err
		}
		printer.Folders(list)
		return nil
	},
}

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
}

var folderAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client.AddFolder(cmd.Context(), args[0], folderParent, folderAddDryRun)
		if err != nil {
			return err
		}
		printer.Message(res.Message)
		return nil
	},
}

var folderModifyCmd = &cobra.Command{
	Use:   "modify <id|name>",
	Short: "Modify a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := ops.ModifyFolderOptions{Name: folderModName, DryRun: folderModDryRun}
		if cmd.Flags().Changed("note") {
			opts.Note = &folderModNote
		}
		if folderModHide {
			v := true
			opts.Hidden = &v
		}
		if folderModUnhide {
			v := false
			opts.Hidden = &v
		}

		res, err := client.ModifyFolder(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		printer.Message(res.Message)
		return nil
	},
}

func init() {
	folderAddCmd.Flags().StringVarP(&folderParent, "parent", "P", "", "Create inside this folder")
	folderAddCmd.Flags().BoolVar(&folderAddDryRun, "dry-run", false, "Preview without writing")

	folderModifyCmd.Flags().StringVar(&folderModName, "name", "", "Rename the folder")
	folderModifyCmd.Flags().StringVarP(&folderModNote, "note", "n", "", "Replace the note")
	folderModifyCmd.Flags().BoolVar(&folderModHide, "hide", false, "Hide the folder")
	folderModifyCmd.Flags().BoolVar(&folderModUnhide, "unhide", false, "Unhide the folder")
	folderModifyCmd.Flags().BoolVar(&folderModDryRun, "dry-run", false, "Preview without writing")

	folderCmd.AddCommand(folderAddCmd, folderModifyCmd)
}
