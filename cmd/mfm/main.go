// Command mfm parses and renders MFM-lite biographies.
//
// Usage:
//
//	mfm [flags] [file or glob ...]
//
// With no arguments the source is read from stdin.
//
// Flags:
//
//	-format string       Output: ansi, html, json, runs, text, mfm (default "ansi")
//	-width int           Wrap width for ansi output (default 80)
//	-styles string       Path to a style table JSON file
//	-reduced-motion      Render motion effects unstyled
//	-max-depth int       Nesting depth cap (default 20)
//	-max-bytes int       Largest accepted source in bytes (default 65536)
//	-preview             Show an animated preview in the terminal
//	-sample              Use the built-in sample biography
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/fwojciec/mfm"
	bt "github.com/fwojciec/mfm/bubbletea"
	"github.com/fwojciec/mfm/fs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mfm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		format        = flag.String("format", formatANSI, "Output: ansi, html, json, runs, text, mfm")
		width         = flag.Int("width", 80, "Wrap width for ansi output")
		stylesPath    = flag.String("styles", "", "Path to a style table JSON file")
		reducedMotion = flag.Bool("reduced-motion", false, "Render motion effects unstyled")
		maxDepth      = flag.Int("max-depth", mfm.DefaultMaxDepth, "Nesting depth cap")
		maxBytes      = flag.Int64("max-bytes", fs.DefaultMaxSourceBytes, "Largest accepted source in bytes")
		preview       = flag.Bool("preview", false, "Show an animated preview in the terminal")
		sample        = flag.Bool("sample", false, "Use the built-in sample biography")
	)
	flag.Parse()

	if err := validateFormat(*format); err != nil {
		return err
	}

	table, err := resolveTable(*stylesPath, *reducedMotion)
	if err != nil {
		return err
	}

	sources, err := loadSources(flag.Args(), *sample, *maxBytes)
	if err != nil {
		return err
	}

	opts := options{
		format:   *format,
		width:    *width,
		maxDepth: *maxDepth,
		table:    table,
		theme:    mfm.DefaultTheme(),
	}

	if *preview {
		if len(sources) != 1 {
			return fmt.Errorf("preview takes exactly one source, got %d", len(sources))
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		m := bt.New(opts.runs(sources[0].text), opts.theme, *reducedMotion)
		if err := bt.Run(ctx, m); err != nil {
			return fmt.Errorf("TUI: %w", err)
		}
		return nil
	}

	for i, src := range sources {
		// Structured formats stay one document per source.
		if len(sources) > 1 && opts.textual() {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "==> %s <==\n", src.name)
		}
		if err := opts.write(os.Stdout, src.text); err != nil {
			return fmt.Errorf("%s: %w", src.name, err)
		}
	}
	return nil
}
