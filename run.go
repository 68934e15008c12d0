package mfm

import "strings"

// Run is a sealed interface representing a unit of presentation output.
// Runs are created fresh by Render and owned by the caller.
type Run interface {
	run()
}

// TextRun is plain text. Text is the literal payload; presentation layers
// escape it for their output format.
type TextRun struct {
	Text string
}

func (TextRun) run() {}

// SpanRun is an inline span with a style treatment or effect.
type SpanRun struct {
	Style Style
	Runs  []Run
}

func (SpanRun) run() {}

// LinkRun is a hyperlink around its runs.
type LinkRun struct {
	URL  string
	Runs []Run
}

func (LinkRun) run() {}

// BlockRun is a structural grouping, such as a centered block.
type BlockRun struct {
	Style Style
	Runs  []Run
}

func (BlockRun) run() {}

// Interface compliance checks.
var (
	_ Run = TextRun{}
	_ Run = SpanRun{}
	_ Run = LinkRun{}
	_ Run = BlockRun{}
)

// RunText returns the concatenated text of runs.
func RunText(runs []Run) string {
	var b strings.Builder
	var walk func([]Run)
	walk = func(runs []Run) {
		for _, r := range runs {
			switch v := r.(type) {
			case TextRun:
				b.WriteString(v.Text)
			case SpanRun:
				walk(v.Runs)
			case LinkRun:
				walk(v.Runs)
			case BlockRun:
				walk(v.Runs)
			}
		}
	}
	walk(runs)
	return b.String()
}
