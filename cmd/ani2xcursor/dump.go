package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/cam-per/ani2xcursor/cursor/ani"
	"github.com/cam-per/ani2xcursor/cursor/ico"
	"github.com/cam-per/ani2xcursor/cursor/riff"
	"github.com/cam-per/ani2xcursor/internal/xcursor"
	"github.com/cam-per/ani2xcursor/utils"
)

const hexPreview = 64

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print the structure of an .ani, .cur/.ico or Xcursor file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "hex dump the first bytes of every leaf chunk",
			},
			verboseFlag(),
		},
		Action: runDump,
	}
}

func runDump(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	if err := requireArgs(cmd, 1, "<file>"); err != nil {
		return err
	}

	file := cmd.Args().First()
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintf(w, "%s: %s\n", file, humanize.Bytes(uint64(len(data))))
	switch {
	case xcursor.IsXcursor(data):
		return dumpXcursor(w, data)
	case len(data) >= 4 && string(data[:4]) == "RIFF":
		return dumpRIFF(w, data, cmd.Bool("hex"))
	default:
		return dumpICO(w, data)
	}
}

func dumpRIFF(w io.Writer, data []byte, withHex bool) error {
	reader := riff.NewReader(data)
	if !reader.Valid() {
		return reader.Err()
	}
	root := reader.Root()
	fmt.Fprintf(w, "RIFF %q size=%d\n", root.FormType, root.Size)

	var walk func(data []byte, base, depth int) error
	walk = func(data []byte, base, depth int) error {
		var err error
		reader.Walk(data, func(chunk riff.Chunk) bool {
			indent := strings.Repeat("  ", depth)
			fmt.Fprintf(w, "%s%q offset=%d size=%d", indent, chunk.ID, base+chunk.Offset, chunk.Size)
			if chunk.FormType != "" {
				fmt.Fprintf(w, " form=%q", chunk.FormType)
			}
			if chunk.Truncated() {
				fmt.Fprintf(w, " truncated(%d)", len(chunk.Data))
			}
			fmt.Fprintln(w)

			if chunk.IsList() {
				err = walk(chunk.Data, base+chunk.DataOffset(), depth+1)
				return err == nil
			}
			if withHex {
				head := chunk.Data[:min(len(chunk.Data), hexPreview)]
				err = utils.HexDump(w, head, int64(base+chunk.DataOffset()))
			}
			return err == nil
		})
		return err
	}
	if err := walk(root.Data, 12, 1); err != nil {
		return err
	}

	if root.FormType != "ACON" {
		return nil
	}
	anim, err := ani.Decode(data)
	if err != nil {
		fmt.Fprintf(w, "animation: %v\n", err)
		return nil
	}
	fmt.Fprintf(w, "animation: %d frames, %d steps, %d ms", anim.NumFrames, anim.NumSteps, anim.TotalDurationMS())
	if anim.Title != "" {
		fmt.Fprintf(w, ", title %q", anim.Title)
	}
	if anim.Author != "" {
		fmt.Fprintf(w, ", author %q", anim.Author)
	}
	fmt.Fprintln(w)
	for _, warning := range anim.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	return nil
}

func dumpICO(w io.Writer, data []byte) error {
	decoder, err := ico.Parse(data)
	if err != nil {
		return err
	}
	kind := "icon"
	if decoder.IsCursor() {
		kind = "cursor"
	}
	entries := decoder.Entries()
	fmt.Fprintf(w, "%s directory, %d entries, best %d\n", kind, len(entries), decoder.Best())
	for i, e := range entries {
		x, y := decoder.Hotspot(e)
		fmt.Fprintf(w, "  #%d %dx%d %s offset=%d size=%d hotspot=%d,%d\n",
			i, e.PixelWidth(), e.PixelHeight(), decoder.Format(i), e.Offset, e.Size, x, y)
	}
	return nil
}

func dumpXcursor(w io.Writer, data []byte) error {
	decoder, err := xcursor.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return err
	}
	images, err := decoder.Images()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "xcursor, %d images\n", len(images))
	for i, img := range images {
		fmt.Fprintf(w, "  #%d size=%d %dx%d hotspot=%d,%d delay=%d\n",
			i, img.Size, img.Width, img.Height, img.HotspotX, img.HotspotY, img.Delay)
	}
	return nil
}
