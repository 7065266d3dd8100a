package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"      _ _       _",
	"  ___| (_)_ __ | |__   _____  __",
	" / __| | | '_ \\| '_ \\ / _ \\ \\/ /",
	" \\__ \\ | | |_) | |_) | (_) >  <",
	" |___/_|_| .__/|_.__/ \\___/_/\\_\\",
	"         |_|",
}

// Warm pink to peach, one color per line.
var bannerColors = []string{"#f472b6", "#f47aa8", "#f5839a", "#f68c8c", "#f7957e", "#f89e70"}

// PrintBanner writes the slipbox banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(out)
	for i, line := range bannerLines {
		fmt.Fprintln(out, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	if version = strings.TrimSpace(version); version != "" {
		fmt.Fprintln(out, out.String("  v"+version).Faint())
	}
	fmt.Fprintln(out)
}
