package theme

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/cam-per/ani2xcursor/cursor/sizes"
	"github.com/cam-per/ani2xcursor/internal/convert"
	"github.com/cam-per/ani2xcursor/internal/source"
	"github.com/cam-per/ani2xcursor/internal/xcursor"
)

type Format string

const (
	FormatXcursor Format = "xcursor"
	FormatSource  Format = "source"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatXcursor:
		return FormatXcursor, nil
	case FormatSource:
		return f, nil
	}
	return "", fmt.Errorf("theme: unknown output format %q", s)
}

type Options struct {
	InputDir   string
	OutputDir  string
	Selection  sizes.Selection
	Format     Format
	SkipBroken bool
}

// Report summarizes a build. Failed holds per-cursor errors that were skipped.
type Report struct {
	Dir       string
	Converted []string
	Failed    *multierror.Error
	Warnings  []string
}

func (r *Report) fail(err error) {
	r.Failed = multierror.Append(r.Failed, err)
}

// Build converts every mapped cursor into <OutputDir>/<theme name>. Without
// SkipBroken the first missing role or failing cursor aborts the build; with
// it failures are collected and the build fails only if nothing converted.
func Build(ctx context.Context, m *Manifest, opts Options) (*Report, error) {
	required, optional := m.Missing()
	for _, role := range append(required, optional...) {
		slog.Warn("role is not mapped", "role", role)
	}
	if len(required) > 0 && !opts.SkipBroken {
		return nil, fmt.Errorf("%w: %s (skip broken cursors to continue)", ErrMissingRoles, strings.Join(required, ", "))
	}

	name := m.ThemeName(opts.InputDir)
	report := &Report{Dir: filepath.Join(opts.OutputDir, name)}
	w, err := newWriter(opts.Format, report.Dir)
	if err != nil {
		return nil, err
	}

	roles := m.Roles()
	slog.Info("building theme", "name", name, "cursors", len(roles), "format", opts.Format)

	conv := convert.New(opts.Selection)
	for _, role := range roles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel := m.Cursors[role]
		names := xcursor.Lookup(role)
		err := buildCursor(conv, w, filepath.Join(opts.InputDir, filepath.FromSlash(rel)), names, report)
		if err != nil {
			err = fmt.Errorf("%s (%s): %w", role, rel, err)
			if !opts.SkipBroken {
				return nil, err
			}
			slog.Error("failed to convert cursor", "role", role, "file", rel, "err", err)
			report.fail(err)
			continue
		}
		slog.Debug("converted", "role", role, "name", names.Primary)
		report.Converted = append(report.Converted, names.Primary)
	}

	if len(report.Converted) == 0 {
		if report.Failed != nil {
			return nil, fmt.Errorf("%w: %w", ErrNothingBuilt, report.Failed)
		}
		return nil, ErrNothingBuilt
	}

	if err := w.finish(xcursor.IndexTheme{Name: name, Comment: m.Comment, Inherits: m.Inherits}); err != nil {
		return nil, err
	}
	slog.Info("theme complete", "dir", report.Dir, "converted", len(report.Converted), "errors", failures(report))
	return report, nil
}

func failures(r *Report) int {
	if r.Failed == nil {
		return 0
	}
	return len(r.Failed.Errors)
}

func buildCursor(conv *convert.Converter, w writer, file string, names xcursor.Names, report *Report) error {
	if _, err := os.Stat(file); err != nil {
		return err
	}
	result, err := conv.ConvertFile(file)
	if err != nil {
		return err
	}
	report.Warnings = append(report.Warnings, result.Warnings...)

	warnings, err := w.cursor(names, result)
	report.Warnings = append(report.Warnings, warnings...)
	return err
}

type writer interface {
	cursor(names xcursor.Names, result *convert.Result) ([]string, error)
	finish(index xcursor.IndexTheme) error
}

func newWriter(format Format, dir string) (writer, error) {
	switch format {
	case "", FormatXcursor:
		cursors := filepath.Join(dir, "cursors")
		if err := os.MkdirAll(cursors, 0o755); err != nil {
			return nil, err
		}
		return &xcursorWriter{dir: dir, cursors: cursors}, nil
	case FormatSource:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		return &sourceWriter{dir: dir}, nil
	}
	return nil, fmt.Errorf("theme: unknown output format %q", format)
}

type xcursorWriter struct {
	dir     string
	cursors string
}

func (w *xcursorWriter) cursor(names xcursor.Names, result *convert.Result) ([]string, error) {
	if err := xcursor.WriteFile(filepath.Join(w.cursors, names.Primary), result.Images(), result.Delays()); err != nil {
		return nil, err
	}
	return xcursor.CreateAliases(w.cursors, names.Primary, names.Aliases), nil
}

func (w *xcursorWriter) finish(index xcursor.IndexTheme) error {
	return xcursor.WriteIndexTheme(w.dir, index)
}

type sourceWriter struct {
	dir     string
	aliases []source.Alias
}

func (w *sourceWriter) cursor(names xcursor.Names, result *convert.Result) ([]string, error) {
	if err := source.WriteCursor(w.dir, names.Primary, result.Images(), result.Delays()); err != nil {
		return nil, err
	}
	for _, alias := range names.Aliases {
		if alias != names.Primary {
			w.aliases = append(w.aliases, source.Alias{Name: alias, Target: names.Primary})
		}
	}
	return nil, nil
}

func (w *sourceWriter) finish(index xcursor.IndexTheme) error {
	if err := source.WriteCursorList(w.dir, w.aliases); err != nil {
		return err
	}
	return xcursor.WriteIndexTheme(w.dir, index)
}
