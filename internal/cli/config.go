package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOut {
			printer.JSON(cfg)
			return nil
		}
		printer.Message("Config file: " + config.ConfigPath())
		printer.JSON(cfg)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ConfigPath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return err
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		printer.Message("Wrote " + path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
