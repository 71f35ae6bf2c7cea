package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Glossa banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`   ____ _`, "#34d399"},
		{`  / ___| | ___  ___ ___  __ _`, "#2dd4bf"},
		{` | |  _| |/ _ \/ __/ __|/ _' |`, "#22d3ee"},
		{` | |_| | | (_) \__ \__ \ (_| |`, "#38bdf8"},
		{`  \____|_|\___/|___/___/\__,_|`, "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
