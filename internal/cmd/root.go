package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/nash/internal/config"
)

// rootFlags holds command line overrides for the configuration.
var rootFlags struct {
	configPath string
	execDir    string
	height     int
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:   "nash",
	Short: "a tiny interactive shell with inline completion",
	Long: `nash - a tiny interactive shell
  - type a command and press Enter to run it
  - Tab cycles completions from the executable directory`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

// Execute runs the root command. Errors are printed as "nash: <err>".
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nash: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/nash/config.yaml)")

	flags := rootCmd.Flags()
	flags.StringVar(&rootFlags.execDir, "exec-dir", "", "directory completions are read from")
	flags.IntVar(&rootFlags.height, "height", 0, "percent of the terminal height to use (1-100)")
	flags.BoolVar(&rootFlags.debug, "debug", false, "write debug logs")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies command line overrides on
// top of it. It returns the config path that was used.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path := rootFlags.configPath
	if path == "" {
		path = config.DefaultPaths().ConfigFile()
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("exec-dir") {
		cfg.ExecDir = rootFlags.execDir
	}
	if flags.Changed("height") {
		cfg.HeightPercent = rootFlags.height
	}
	if flags.Changed("debug") && rootFlags.debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, path, nil
}
