// Command simple-translate runs the selected-text translation bridge and
// offers one-shot lookups from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chyxhtc/simple-translate-dict/internal/app"
	"github.com/chyxhtc/simple-translate-dict/internal/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "simple-translate",
		Short: "Selected-text translation and dictionary lookup bridge",
		Long: `simple-translate serves the message bridge used by the translation panel.

Commands:
  serve     Run the HTTP message bridge
  lookup    Translate text once and print the result
  config    Print the effective configuration (secrets redacted)
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newLookupCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Load configuration from YAML, environment and defaults, then print it as YAML with the dictionary API key redacted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return config.Print(cmd.OutOrStdout(), cfg)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "simple-translate %s\n", app.BuildVersion())
		},
	}
}
