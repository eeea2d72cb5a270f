package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peopledesk/peopledesk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and scaffold configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the effective configuration as YAML, after applying the config
file, environment overrides, and defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if dataPath != "" {
			cfg.Store.Path = dataPath
		}
		out, err := cfg.RenderYAML()
		if err != nil {
			return err
		}
		os.Stdout.Write(out)
		return nil
	},
}

var configInitPath string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{}
		cfg.SetDefaults()
		if err := cfg.WriteFile(configInitPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", configInitPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "peopledesk.yaml", "where to write the config file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
