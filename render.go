package mfm

// Render converts a syntax tree into presentation runs, depth-first in
// source order. Container kinds map to their fixed treatment; a Function is
// wrapped in its effect when the table knows its name and is otherwise
// replaced by its rendered children. Render never modifies nodes.
func Render(nodes []Node, table StyleTable) []Run {
	var runs []Run
	for _, n := range nodes {
		runs = renderNode(runs, n, table)
	}
	return runs
}

func renderNode(runs []Run, n Node, table StyleTable) []Run {
	switch v := n.(type) {
	case Text:
		return append(runs, TextRun{Text: v.Text})
	case Bold:
		return append(runs, SpanRun{Style: StyleBold, Runs: Render(v.Children, table)})
	case Italic:
		return append(runs, SpanRun{Style: StyleItalic, Runs: Render(v.Children, table)})
	case Strike:
		return append(runs, SpanRun{Style: StyleStrike, Runs: Render(v.Children, table)})
	case Small:
		return append(runs, SpanRun{Style: StyleSmall, Runs: Render(v.Children, table)})
	case Center:
		return append(runs, BlockRun{Style: StyleCenter, Runs: Render(v.Children, table)})
	case Link:
		return append(runs, LinkRun{URL: v.URL, Runs: Render(v.Children, table)})
	case Function:
		if effect, ok := table.Lookup(v.Name); ok {
			return append(runs, SpanRun{Style: effect, Runs: Render(v.Children, table)})
		}
		return append(runs, Render(v.Children, table)...)
	default:
		// nil, the only value outside the closed set.
		return runs
	}
}
