package cmd

import (
	"os"

	"github.com/muesli/termenv"
)

// ANSI codes for the plain-text subcommands. They are emptied in init()
// when stdout cannot show colors.
var (
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[0;33m"
	colorCyan   = "\033[0;36m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
	colorReset  = "\033[0m"
)

func init() {
	if shouldDisableColors() {
		disableColors()
	}
}

// shouldDisableColors honours NO_COLOR and TERM=dumb, and turns colors off
// when stdout is not a terminal.
func shouldDisableColors() bool {
	if os.Getenv("TERM") == "dumb" {
		return true
	}
	return termenv.NewOutput(os.Stdout).EnvColorProfile() == termenv.Ascii
}

func disableColors() {
	colorRed = ""
	colorGreen = ""
	colorYellow = ""
	colorCyan = ""
	colorDim = ""
	colorBold = ""
	colorReset = ""
}
