package cmd

import (
	"fmt"
	"io"
	"strings"

	"chartserve/core/server"
)

// urlSource is the part of *server.Server the banner needs.
type urlSource interface {
	URL(path string) string
	Root() string
}

// printBanner writes the startup banner listing the server URL and known pages.
func printBanner(w io.Writer, srv urlSource, cfg server.Config) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "RAINFALL CHARTS LOCAL SERVER")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Server running at: %s\n", srv.URL("/"))
	fmt.Fprintf(w, "Serving directory: %s\n", srv.Root())

	if pages := cfg.KnownPages(); len(pages) > 0 {
		width := 0
		for _, p := range pages {
			width = max(width, len(p.Title)+1)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Available pages:")
		for _, p := range pages {
			fmt.Fprintf(w, "  %-*s %s\n", width, p.Title+":", srv.URL(p.Path))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "CORS headers are sent for:")
	fmt.Fprintln(w, "  - Shapefile loading (.shp, .dbf files)")
	fmt.Fprintln(w, "  - SVG map loading")
	fmt.Fprintln(w, "  - Local file access")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")
	fmt.Fprintln(w, rule)
}
