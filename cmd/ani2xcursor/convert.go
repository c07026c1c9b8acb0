package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cam-per/ani2xcursor/internal/convert"
	"github.com/cam-per/ani2xcursor/internal/source"
	"github.com/cam-per/ani2xcursor/internal/theme"
	"github.com/cam-per/ani2xcursor/internal/xcursor"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert a single .ani or .cur file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			outputFlag("."),
			sizesFlag(),
			formatFlag(),
			&cli.StringFlag{
				Name:  "role",
				Usage: "Windows cursor role; names the output after its X11 cursor and creates aliases",
			},
			verboseFlag(),
		},
		Action: runConvert,
	}
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	if err := requireArgs(cmd, 1, "<file>"); err != nil {
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

	file := cmd.Args().First()
	names := cursorNames(file, cmd.String("role"))

	result, err := convert.New(sel).ConvertFile(file)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	out := cmd.String("out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	target := filepath.Join(out, names.Primary)
	switch format {
	case theme.FormatSource:
		target = filepath.Join(out, "config", names.Primary+".cursor")
		err = source.WriteCursor(out, names.Primary, result.Images(), result.Delays())
	default:
		err = xcursor.WriteFile(target, result.Images(), result.Delays())
		if err == nil {
			result.Warnings = append(result.Warnings, xcursor.CreateAliases(out, names.Primary, names.Aliases)...)
		}
	}
	if err != nil {
		return err
	}

	slog.Info("converted", "file", file, "output", target, "sizes", result.Sizes(), "animated", result.Animated)
	w := cmd.Root().Writer
	fmt.Fprintf(w, "%s -> %s (%d images, sizes %v)\n", file, target, len(result.Images()), result.Sizes())
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	return nil
}

// cursorNames names the output after role when it is a known Windows role,
// otherwise after the input file.
func cursorNames(file, role string) xcursor.Names {
	if role != "" {
		if xcursor.Known(role) {
			return xcursor.Lookup(role)
		}
		slog.Warn("unknown role, using file name", "role", role)
	}
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return xcursor.Names{Primary: stem}
}
