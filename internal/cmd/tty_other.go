//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cmd

import "github.com/runger/nash/internal/render"

// checkTTY cannot probe the terminal here; the program loop reports a
// missing terminal instead.
func checkTTY() error {
	return nil
}

// termSize returns the render defaults. The real size arrives with the
// first window size event.
func termSize() (width, height int) {
	return render.DefaultWidth, render.DefaultHeight
}
