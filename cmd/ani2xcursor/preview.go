package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cam-per/ani2xcursor/internal/preview"
)

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "render preview sheets for a cursor file or a directory of cursors",
		ArgsUsage: "<file|dir>",
		Flags: []cli.Flag{
			outputFlag("previews"),
			sizesFlag(),
			&cli.IntFlag{
				Name:  "scale",
				Usage: "magnification of each frame",
				Value: 2,
			},
			verboseFlag(),
		},
		Action: runPreview,
	}
}

func runPreview(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	if err := requireArgs(cmd, 1, "<file|dir>"); err != nil {
		return err
	}
	sel, err := selection(cmd)
	if err != nil {
		return err
	}
	scale := int(cmd.Int("scale"))
	if scale < 1 {
		return fmt.Errorf("--scale must be at least 1, got %d", scale)
	}
	opts := preview.Options{Selection: sel, Scale: scale}

	target := cmd.Args().First()
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	out := cmd.String("out")
	w := cmd.Root().Writer
	if info.IsDir() {
		result, err := preview.GenerateDir(target, out, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d previews in %s (%d failed)\n", result.Generated, out, result.Failed)
		for role, file := range result.Guesses {
			fmt.Fprintf(w, "  %s: %s\n", role, file)
		}
		return nil
	}

	sheet, err := preview.Render(target, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}
	name := strings.TrimSuffix(filepath.Base(target), filepath.Ext(target)) + ".png"
	dest := filepath.Join(out, name)
	if err := preview.WritePNG(dest, sheet); err != nil {
		return err
	}
	fmt.Fprintln(w, dest)
	return nil
}
