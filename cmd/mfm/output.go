package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/mfm"
	mfmhtml "github.com/fwojciec/mfm/html"
	mfmjson "github.com/fwojciec/mfm/json"
	mfmlipgloss "github.com/fwojciec/mfm/lipgloss"
)

// Output formats.
const (
	formatANSI = "ansi"
	formatHTML = "html"
	formatJSON = "json"
	formatRuns = "runs"
	formatText = "text"
	formatMFM  = "mfm"
)

func validateFormat(format string) error {
	switch format {
	case formatANSI, formatHTML, formatJSON, formatRuns, formatText, formatMFM:
		return nil
	default:
		return fmt.Errorf("unknown format %q: %w", format, mfm.ErrValidation)
	}
}

// options holds the resolved rendering configuration.
type options struct {
	format   string
	width    int
	maxDepth int
	table    mfm.StyleTable
	theme    mfm.Theme
}

func (o options) parse(src string) []mfm.Node {
	return mfm.Parse(src, mfm.WithMaxDepth(o.maxDepth))
}

func (o options) runs(src string) []mfm.Run {
	return mfm.Render(o.parse(src), o.table)
}

// textual reports whether the format is meant for reading directly.
func (o options) textual() bool {
	return o.format == formatANSI || o.format == formatText || o.format == formatMFM
}

// write renders src to w in the configured format.
func (o options) write(w io.Writer, src string) error {
	var out string
	switch o.format {
	case formatANSI:
		out = mfmlipgloss.Render(o.runs(src), o.width, o.theme, 0)
	case formatHTML:
		s, err := mfmhtml.RenderString(o.runs(src), "")
		if err != nil {
			return err
		}
		out = s
	case formatJSON:
		data, err := mfmjson.MarshalNodes(o.parse(src))
		if err != nil {
			return fmt.Errorf("marshal nodes: %w", err)
		}
		out = string(data)
	case formatRuns:
		data, err := mfmjson.MarshalRuns(o.runs(src))
		if err != nil {
			return fmt.Errorf("marshal runs: %w", err)
		}
		out = string(data)
	case formatText:
		out = mfm.PlainText(o.parse(src))
	case formatMFM:
		out = mfm.Format(o.parse(src))
	default:
		return fmt.Errorf("unknown format %q: %w", o.format, mfm.ErrValidation)
	}
	if _, err := fmt.Fprintln(w, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
