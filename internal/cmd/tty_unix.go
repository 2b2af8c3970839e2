//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cmd

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/runger/nash/internal/render"
)

// checkTTY verifies that stdin and stdout are terminals.
func checkTTY() error {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if _, err := unix.IoctlGetTermios(int(f.Fd()), ioctlReadTermios); err != nil {
			return fmt.Errorf("%s is not a terminal", f.Name())
		}
	}
	return nil
}

// termSize returns the terminal size of stdout, or the render defaults if it
// cannot be read.
func termSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return render.DefaultWidth, render.DefaultHeight
	}
	return int(ws.Col), int(ws.Row)
}
