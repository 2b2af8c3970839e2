package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/nash/internal/config"
)

var configYAML bool

var configCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Show configuration values",
	Long: `Show the effective nash configuration.

Without arguments, lists every key and its value.
With one argument, prints the value of that key.
With --yaml, prints the whole configuration as a config file.

Configuration is read from ~/.config/nash/config.yaml (XDG compliant),
or from the file named by --config or $NASH_CONFIG.

Examples:
  nash config                  # List all keys
  nash config exec_dir         # Show the completion directory
  nash config --yaml > my.yaml # Start a config file from the defaults`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configYAML, "yaml", false, "print the configuration as YAML")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case configYAML:
		data, err := cfg.YAML()
		if err != nil {
			return err
		}
		fmt.Fprint(out, data)
		return nil
	case len(args) == 1:
		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	}

	listConfig(out, cfg, path)
	return nil
}

func listConfig(out io.Writer, cfg *config.Config, path string) {
	fmt.Fprintf(out, "%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out)

	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		if value == "" {
			value = colorDim + "(not set)" + colorReset
		} else {
			value = fmt.Sprintf("%q", value)
		}
		fmt.Fprintf(out, "  %s%-16s%s %s\n", colorCyan, key, colorReset, value)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%sConfig file: %s%s\n", colorDim, path, colorReset)
}
