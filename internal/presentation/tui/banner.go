package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the normsuite banner with the version underneath.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{" _ __   ___  _ __ _ __ ___  ___ _   _(_) |_ ___", "#818cf8"},
		{"| '_ \\ / _ \\| '__| '_ ` _ \\/ __| | | | | __/ _ \\", "#a78bfa"},
		{"| | | | (_) | |  | | | | | \\__ \\ |_| | | ||  __/", "#c084fc"},
		{"|_| |_|\\___/|_|  |_| |_| |_|___/\\__,_|_|\\__\\___|", "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  norm inference "+version).Faint())
	fmt.Fprintln(w)
}
