package helpers

import (
	"fmt"
	"io"
)

// MustFprintln and MustFprintf are for report output, where a failed write to stdout or stderr
// leaves nothing sensible to do but stop.

func MustFprintln(w io.Writer, a ...any) {
	if _, err := fmt.Fprintln(w, a...); err != nil {
		panic(err)
	}
}

func MustFprintf(w io.Writer, format string, a ...any) {
	if _, err := fmt.Fprintf(w, format, a...); err != nil {
		panic(err)
	}
}
