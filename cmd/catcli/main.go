package main

import (
	"fmt"
	"os"

	"github.com/Station-Manager/cat"
	"github.com/spf13/cobra"
)

var version = "dev"

type globalFlags struct {
	configPath string
	logLevel   string
}

func main() {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "catcli",
		Short: "Yaesu CAT command tool",
		Long: `catcli inspects the Yaesu CAT command table, runs captured CAT traffic
through the command engine, and talks to a rig or a controller over a serial port.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (.json, .toml, .yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: trace|debug|info|warn|error|disabled")

	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newParseCmd(flags))
	rootCmd.AddCommand(newPortsCmd())
	rootCmd.AddCommand(newListenCmd(flags))
	rootCmd.AddCommand(newSendCmd(flags))
	rootCmd.AddCommand(newMonitorCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the file config, or the defaults when no file is given.
func (f *globalFlags) loadConfig() (cat.Config, error) {
	cfg := cat.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = cat.LoadConfig(f.configPath); err != nil {
			return cat.Config{}, err
		}
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}
