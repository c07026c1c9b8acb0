package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/cam-per/ani2xcursor/internal/convert"
)

func sizesCommand() *cli.Command {
	return &cli.Command{
		Name:      "sizes",
		Usage:     "list the cursor sizes stored in a file or in every cursor of a directory",
		ArgsUsage: "<file|dir>",
		Flags:     []cli.Flag{verboseFlag()},
		Action:    runSizes,
	}
}

func runSizes(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	if err := requireArgs(cmd, 1, "<file|dir>"); err != nil {
		return err
	}

	target := cmd.Args().First()
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if !info.IsDir() {
		found, err := convert.CollectSizes(target)
		if err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
		fmt.Fprintf(w, "%s (%s): %s\n", target, humanize.Bytes(uint64(info.Size())), joinSizes(found))
		return nil
	}

	files, all, err := convert.CollectDir(target)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(w, "%-32s %8s  %s\n", f.Name, humanize.Bytes(uint64(f.Bytes)), joinSizes(f.Sizes))
	}
	fmt.Fprintf(w, "%d files, sizes: %s\n", len(files), joinSizes(all))
	return nil
}

func joinSizes(sizes []int) string {
	if len(sizes) == 0 {
		return "none"
	}
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
