package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/nash/internal/config"
	nashlog "github.com/runger/nash/internal/log"
	"github.com/runger/nash/internal/suggest"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that nash can start",
	Long: `Run the checks nash depends on at startup.

This command checks:
- Configuration validity
- The completion directory can be listed
- The terminal
- The log file, when logging is enabled

Examples:
  nash doctor
  nash doctor --config ./my.yaml`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	status  string // "ok", "warn", "error"
	message string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%snash Doctor%s\n", colorBold, colorReset)
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out)

	results := make([]checkResult, 0, 4)

	cfg, path, err := loadConfig(cmd)
	if err != nil {
		results = append(results, checkResult{name: "configuration", status: "error", message: err.Error()})
	} else {
		results = append(results, checkResult{name: "configuration", status: "ok", message: path})
		results = append(results, checkExecDir(cfg.ExecDir))
		results = append(results, checkLogFile(cfg))
	}
	results = append(results, checkTerminal())

	if printResults(out, results) {
		return fmt.Errorf("doctor found errors")
	}
	return nil
}

// printResults prints one line per check and reports whether any failed.
func printResults(out io.Writer, results []checkResult) bool {
	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		var statusIcon string
		switch r.status {
		case "ok":
			statusIcon = colorGreen + "[OK]" + colorReset
		case "warn":
			statusIcon = colorYellow + "[WARN]" + colorReset
			hasWarnings = true
		case "error":
			statusIcon = colorRed + "[ERROR]" + colorReset
			hasErrors = true
		}

		fmt.Fprintf(out, "  %s %s\n", statusIcon, r.name)
		if r.message != "" {
			fmt.Fprintf(out, "       %s%s%s\n", colorDim, r.message, colorReset)
		}
	}

	fmt.Fprintln(out)

	switch {
	case hasErrors:
		fmt.Fprintf(out, "%sSome checks failed. Please fix the errors above.%s\n", colorRed, colorReset)
	case hasWarnings:
		fmt.Fprintf(out, "%sAll critical checks passed, but there are warnings.%s\n", colorYellow, colorReset)
	default:
		fmt.Fprintf(out, "%sAll checks passed!%s\n", colorGreen, colorReset)
	}
	return hasErrors
}

// checkExecDir lists dir the same way a session does, so a directory that
// would abort a session fails here instead.
func checkExecDir(dir string) checkResult {
	name := "completion directory"
	failed := make(chan error, 1)
	source := suggest.NewDirSource(dir, suggest.WithAbort(func(err error) {
		failed <- err
	}))

	entries := 0
	for range source.Start() {
		entries++
	}

	select {
	case err := <-failed:
		return checkResult{name: name, status: "error", message: err.Error()}
	default:
	}
	if entries == 0 {
		return checkResult{name: name, status: "warn", message: dir + " is empty; Tab will not complete anything"}
	}
	return checkResult{name: name, status: "ok", message: fmt.Sprintf("%s (%d entries)", dir, entries)}
}

func checkLogFile(cfg *config.Config) checkResult {
	name := "log file"
	path := cfg.LogFile
	if path == "" && cfg.LogLevel == "debug" {
		path = config.DefaultPaths().LogFile()
	}
	if path == "" {
		return checkResult{name: name, status: "ok", message: "logging disabled"}
	}

	f, err := nashlog.OpenFile(path)
	if err != nil {
		return checkResult{name: name, status: "error", message: err.Error()}
	}
	_ = f.Close()
	return checkResult{name: name, status: "ok", message: path}
}

func checkTerminal() checkResult {
	name := "terminal"
	if os.Getenv("TERM") == "dumb" {
		return checkResult{name: name, status: "warn", message: "TERM=dumb; colors and cursor movement may not work"}
	}
	if err := checkTTY(); err != nil {
		return checkResult{name: name, status: "warn", message: err.Error()}
	}
	width, height := termSize()
	return checkResult{name: name, status: "ok", message: fmt.Sprintf("%dx%d", width, height)}
}
