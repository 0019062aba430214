// Package tui formats inference reports for terminals.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/normsuite"
)

// ReportMarkdown renders a report as a Markdown document.
func ReportMarkdown(r *normsuite.Report) string {
	var sb strings.Builder
	title := r.Name
	if title == "" {
		title = "Norm inference"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "Goal `%s` to `%s`, %d observation(s).\n\n", r.Goal.Start, r.Goal.Target, r.Observations)

	sb.WriteString("## Plans\n\n")
	for _, p := range r.Plans {
		fmt.Fprintf(&sb, "- `%s`\n", strings.Join(p, " "))
	}

	fmt.Fprintf(&sb, "\n## Most probable norms (%d requested, %d shown)\n\n", r.Requested, r.Effective)
	sb.WriteString("| # | Norm | Mass |\n|---|---|---|\n")
	for i, s := range r.Top {
		fmt.Fprintf(&sb, "| %d | %s | %.6g |\n", i+1, s.Hypothesis, s.Mass)
	}

	if len(r.Skipped) > 0 {
		sb.WriteString("\n## Skipped evidence\n\n")
		for _, s := range r.Skipped {
			fmt.Fprintf(&sb, "- `%s` (%s): %s\n", s.Trace, s.Evidence, s.Reason)
		}
	}
	return sb.String()
}

// PrintPlain writes the report as aligned text. Masses of the top entries are
// highlighted when the writer supports color.
func PrintPlain(w io.Writer, r *normsuite.Report) {
	out := termenv.NewOutput(w)
	fmt.Fprintf(w, "goal: %s -> %s\n", r.Goal.Start, r.Goal.Target)
	for _, p := range r.Plans {
		fmt.Fprintf(w, "plan: %s\n", strings.Join(p, " "))
	}
	for _, s := range r.Top {
		mass := out.String(fmt.Sprintf("%.6g", s.Mass)).Bold()
		fmt.Fprintf(w, "%-24s %s\n", s.Hypothesis.String(), mass)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "skipped %s evidence for %q: %s\n", s.Evidence, s.Trace, s.Reason)
	}
}
