package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ani2xcursor:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "ani2xcursor",
		Usage: "convert Windows .ani/.cur cursors into X11 cursor themes",
		Commands: []*cli.Command{
			themeCommand(),
			convertCommand(),
			sizesCommand(),
			previewCommand(),
			dumpCommand(),
		},
	}
}
