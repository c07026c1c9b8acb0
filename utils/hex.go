package utils

import (
	"encoding/hex"
	"fmt"
	"io"
	"unicode"
)

// HexDump writes data as 16-byte rows, each prefixed with its offset from base.
func HexDump(w io.Writer, data []byte, base int64) error {
	for i := 0; i < len(data); i += 16 {
		end := min(i+16, len(data))
		chunk := data[i:end]

		if _, err := fmt.Fprintf(w, "%08x  ", base+int64(i)); err != nil {
			return err
		}

		hexStr := hex.EncodeToString(chunk)
		for j := 0; j < len(hexStr); j += 2 {
			fmt.Fprintf(w, "%s ", hexStr[j:j+2])
		}
		for j := len(chunk); j < 16; j++ {
			fmt.Fprint(w, "   ")
		}

		fmt.Fprint(w, " |")
		for _, b := range chunk {
			if b < 0x80 && unicode.IsPrint(rune(b)) {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		if _, err := fmt.Fprintln(w, "|"); err != nil {
			return err
		}
	}
	return nil
}
