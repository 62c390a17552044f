package logging

import (
	"fmt"
	"io"
	"time"
)

// Logger writes camdir's diagnostics. The CLI points it at stderr. The TUI
// owns the terminal, so there it writes to camdir.log or nowhere.
type Logger struct {
	Writer  io.Writer
	Verbose bool
}

func New(writer io.Writer, verbose bool) Logger {
	return Logger{Writer: writer, Verbose: verbose}
}

// Discard is the zero Logger: nothing is written, not even warnings.
func Discard() Logger {
	return Logger{}
}

// Infof always writes, unless the logger has no writer.
func (l Logger) Infof(format string, args ...any) {
	if l.Writer == nil {
		return
	}
	fmt.Fprintf(l.Writer, format+"\n", args...)
}

// Warnf reports soft failures such as a missing device or an unreadable
// folder.
func (l Logger) Warnf(format string, args ...any) {
	l.Infof("Warning: "+format, args...)
}

// Verbosef traces discovery, resolution and listing steps behind --verbose.
func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof("Verbose: "+format, args...)
}

// Measure times a discovery or listing step. Call the returned func when the
// step ends.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.Verbosef("%s took %s", label, time.Since(start).Round(time.Millisecond))
	}
}
