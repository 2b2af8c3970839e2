// Package suggest streams executable names from a directory into an
// append-only cache that serves prefix lookups for tab completion.
package suggest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	nashlog "github.com/runger/nash/internal/log"
)

// readBatch is how many directory entries are read per ReadDir call.
const readBatch = 64

// ErrInvalidName is reported when a directory entry name is not valid UTF-8.
var ErrInvalidName = errors.New("entry name is not valid UTF-8")

// Source enumerates a directory exactly once in the background and sends
// each entry's base name on a channel. A Source is single use.
type Source struct {
	fsys   fs.FS
	dir    string
	buffer int
	abort  func(error)
	logger *slog.Logger
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithBuffer sets the capacity of the pending channel.
func WithBuffer(n int) SourceOption {
	return func(s *Source) {
		s.buffer = n
	}
}

// WithAbort replaces the fatal-error handler. The default handler writes a
// diagnostic to stderr and exits the process with status 1.
func WithAbort(fn func(error)) SourceOption {
	return func(s *Source) {
		s.abort = fn
	}
}

// WithLogger sets the logger used for source events.
func WithLogger(logger *slog.Logger) SourceOption {
	return func(s *Source) {
		s.logger = logger
	}
}

// NewSource creates a Source over the root of fsys. dir is only used for
// diagnostics.
func NewSource(fsys fs.FS, dir string, opts ...SourceOption) *Source {
	s := &Source{
		fsys:   fsys,
		dir:    dir,
		buffer: 1024,
		logger: nashlog.New(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.abort == nil {
		s.abort = exitOnError
	}
	return s
}

// NewDirSource creates a Source over a directory on the local filesystem.
func NewDirSource(dir string, opts ...SourceOption) *Source {
	return NewSource(os.DirFS(dir), dir, opts...)
}

// Start launches the enumerating goroutine and returns the pending channel.
// The channel is closed once every entry has been sent. Start never blocks.
func (s *Source) Start() <-chan string {
	ch := make(chan string, s.buffer)
	go s.run(ch)
	return ch
}

func (s *Source) run(ch chan<- string) {
	defer close(ch)

	start := time.Now()
	sent := 0

	f, err := s.fsys.Open(".")
	if err != nil {
		s.fail(fmt.Errorf("failed to open %s: %w", s.dir, err))
		return
	}
	defer f.Close()

	dir, ok := f.(fs.ReadDirFile)
	if !ok {
		s.fail(fmt.Errorf("failed to list %s: not a directory", s.dir))
		return
	}

	for {
		entries, err := dir.ReadDir(readBatch)
		for _, entry := range entries {
			name := entry.Name()
			if !utf8.ValidString(name) {
				s.fail(fmt.Errorf("failed to list %s: %w: %q", s.dir, ErrInvalidName, name))
				return
			}
			ch <- name
			sent++
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.fail(fmt.Errorf("failed to list %s: %w", s.dir, err))
			return
		}
		if len(entries) == 0 {
			break
		}
	}

	nashlog.LogSourceDone(s.logger, s.dir, sent, time.Since(start))
}

func (s *Source) fail(err error) {
	nashlog.LogSourceFatal(s.logger, s.dir, err)
	s.abort(err)
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "nash: %v\n", err)
	os.Exit(1)
}
