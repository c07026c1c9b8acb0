package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cam-per/ani2xcursor/cursor/sizes"
	"github.com/cam-per/ani2xcursor/internal/log"
	"github.com/cam-per/ani2xcursor/internal/theme"
)

const envPrefix = "ANI2XCURSOR_"

func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log debug details",
		Sources: cli.EnvVars(envPrefix + "VERBOSE"),
	}
}

func outputFlag(value string) cli.Flag {
	return &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "output directory",
		Value:   value,
		Sources: cli.EnvVars(envPrefix + "OUT"),
	}
}

func sizesFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "sizes",
		Aliases: []string{"s"},
		Usage:   `sizes to export: "all", "max" (first stored size) or a list like "24,32,48"`,
		Value:   "all",
		Sources: cli.EnvVars(envPrefix + "SIZES"),
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   `output format: "xcursor" or "source" (PNG frames with xcursorgen configs)`,
		Value:   string(theme.FormatXcursor),
		Sources: cli.EnvVars(envPrefix + "FORMAT"),
	}
}

func skipBrokenFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "skip-broken",
		Usage:   "continue past cursors that fail to convert",
		Sources: cli.EnvVars(envPrefix + "SKIP_BROKEN"),
	}
}

// setupLogging installs the logger for a command run. Logs go to the root
// command's error writer.
func setupLogging(cmd *cli.Command) {
	log.Setup(cmd.Root().ErrWriter, cmd.Bool("verbose"))
}

func selection(cmd *cli.Command) (sizes.Selection, error) {
	sel, err := sizes.ParseSelection(cmd.String("sizes"))
	if err != nil {
		return sizes.Selection{}, fmt.Errorf("--sizes: %w", err)
	}
	return sel, nil
}

func requireArgs(cmd *cli.Command, n int, usage string) error {
	if cmd.Args().Len() != n {
		return fmt.Errorf("usage: %s %s", cmd.FullName(), usage)
	}
	return nil
}
