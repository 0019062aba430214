package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/normsuite"
	"github.com/aretw0/normsuite/internal/presentation/tui"
)

// Output formats accepted by WriteReport.
const (
	FormatAuto     = "auto"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ResolveFormat turns FormatAuto into a concrete format for w: rendered
// Markdown on terminals, plain text otherwise.
func ResolveFormat(format string, w io.Writer) string {
	if format != FormatAuto && format != "" {
		return format
	}
	if IsTerminal(w) {
		return FormatMarkdown
	}
	return FormatText
}

// WriteReport writes the report in the requested format.
func WriteReport(w io.Writer, r *normsuite.Report, format string) error {
	switch ResolveFormat(format, w) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatMarkdown:
		md := tui.ReportMarkdown(r)
		if IsTerminal(w) {
			rendered, err := tui.NewRenderer()(md)
			if err != nil {
				return err
			}
			md = rendered
		}
		_, err := io.WriteString(w, md)
		return err
	case FormatText:
		tui.PrintPlain(w, r)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want auto, json, markdown or text)", format)
	}
}
