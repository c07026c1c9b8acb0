// Package log installs the process-wide slog handler.
package log

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const timeFormat = time.TimeOnly

// Level is Debug when verbose and Info otherwise.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewHandler returns a tint handler writing to w. Colors are enabled only
// when w is a terminal.
func NewHandler(w io.Writer, verbose bool) slog.Handler {
	noColor := true
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		noColor = false
		w = colorable.NewColorable(f)
	}

	return tint.NewHandler(w, &tint.Options{
		AddSource:  verbose,
		Level:      Level(verbose),
		TimeFormat: timeFormat,
		NoColor:    noColor,
	})
}

// Setup makes a tint logger on w the default logger.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	logger := slog.New(NewHandler(w, verbose))
	slog.SetDefault(logger)
	return logger
}
