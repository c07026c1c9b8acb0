package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/cam-per/ani2xcursor/internal/preview"
	"github.com/cam-per/ani2xcursor/internal/theme"
)

func themeCommand() *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "build an X11 cursor theme from a directory of Windows cursors",
		ArgsUsage: "<dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "role mapping file, relative paths resolve against <dir>",
				Value:   theme.ManifestName,
			},
			outputFlag("."),
			sizesFlag(),
			formatFlag(),
			skipBrokenFlag(),
			verboseFlag(),
		},
		Action: runTheme,
	}
}

func runTheme(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	if err := requireArgs(cmd, 1, "<dir>"); err != nil {
		return err
	}
	sel, err := selection(cmd)
	if err != nil {
		return err
	}
	format, err := theme.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	dir := cmd.Args().First()
	manifestPath := cmd.String("manifest")
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(dir, manifestPath)
	}

	w := cmd.Root().Writer
	m, err := theme.Load(manifestPath)
	if errors.Is(err, fs.ErrNotExist) {
		return draftManifest(cmd, dir, manifestPath)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", manifestPath, err)
	}

	report, err := theme.Build(ctx, m, theme.Options{
		InputDir:   dir,
		OutputDir:  cmd.String("out"),
		Selection:  sel,
		Format:     format,
		SkipBroken: cmd.Bool("skip-broken"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "theme written to %s (%d cursors, %s)\n", report.Dir, len(report.Converted), humanize.Bytes(dirSize(report.Dir)))
	if report.Failed != nil {
		fmt.Fprintf(w, "%d cursors skipped:\n", len(report.Failed.Errors))
		for _, err := range report.Failed.Errors {
			fmt.Fprintf(w, "  %v\n", err)
		}
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	return nil
}

// draftManifest writes a guessed manifest and one preview per cursor next to
// it so the mapping can be checked and edited before building.
func draftManifest(cmd *cli.Command, dir, manifestPath string) error {
	sel, err := selection(cmd)
	if err != nil {
		return err
	}

	m, err := theme.Scan(dir)
	if err != nil {
		return err
	}
	if err := m.Save(manifestPath); err != nil {
		return err
	}

	previews := filepath.Join(filepath.Dir(manifestPath), "previews")
	result, err := preview.GenerateDir(dir, previews, preview.Options{Selection: sel, Scale: 2})
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintf(w, "no manifest found; wrote a draft to %s\n", manifestPath)
	fmt.Fprintf(w, "%d previews in %s (%d failed)\n", result.Generated, previews, result.Failed)
	required, _ := m.Missing()
	for _, role := range required {
		fmt.Fprintf(w, "  unmapped: %s\n", role)
	}
	fmt.Fprintln(w, "review the mapping and run the command again")
	return nil
}

func dirSize(dir string) uint64 {
	var total uint64
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += uint64(info.Size())
		}
		return nil
	})
	return total
}
