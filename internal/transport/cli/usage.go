package cli

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage:")
	_, _ = fmt.Fprintln(w, "  ulidgen [-n N] [-l] [--timestamp MS | --datetime RFC3339] [--verbose]")
	_, _ = fmt.Fprintln(w, "  ulidgen --inspect ULID")
	_, _ = fmt.Fprintln(w, "  ulidgen serve [--port PORT] [--verbose]")
	_, _ = fmt.Fprintln(w, "  ulidgen --version")
}
