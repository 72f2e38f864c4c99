// Package tui holds terminal presentation helpers for the command line.
package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _            _       _ _     _", "#34d399"},
	{"| |_ ___   __| | ___ | (_)___| |_ ___", "#2dd4bf"},
	{"| __/ _ \\ / _` |/ _ \\| | / __| __/ __|", "#22d3ee"},
	{"| || (_) | (_| | (_) | | \\__ \\ |_\\__ \\", "#38bdf8"},
	{" \\__\\___/ \\__,_|\\___/|_|_|___/\\__|___/", "#60a5fa"},
}

// PrintBanner writes the startup banner, coloured when the terminal supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
