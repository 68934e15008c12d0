package mfm

import (
	"sort"
	"strings"
)

// Format serialises nodes back to MFM-lite source. Text is escaped so that
// it parses back to the same payload, and containers are written in their
// tag form, so Parse(Format(Parse(s))) equals Parse(s) for trees within the
// nesting cap.
func Format(nodes []Node) string {
	var b strings.Builder
	formatNodes(&b, nodes)
	return b.String()
}

func formatNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case Text:
			writeEscaped(b, v.Text)
		case Bold:
			formatTag(b, "b", v.Children)
		case Italic:
			formatTag(b, "i", v.Children)
		case Strike:
			formatTag(b, "s", v.Children)
		case Small:
			formatTag(b, "small", v.Children)
		case Center:
			formatTag(b, "center", v.Children)
		case Link:
			b.WriteByte('[')
			formatNodes(b, v.Children)
			b.WriteString("](")
			b.WriteString(v.URL)
			b.WriteByte(')')
		case Function:
			b.WriteString("$[")
			b.WriteString(v.Name)
			if len(v.Args) > 0 {
				b.WriteByte('.')
				for i, key := range sortedKeys(v.Args) {
					if i > 0 {
						b.WriteByte(',')
					}
					b.WriteString(key)
					if value := v.Args[key]; value != "" {
						b.WriteByte('=')
						b.WriteString(value)
					}
				}
			}
			b.WriteByte(' ')
			formatNodes(b, v.Children)
			b.WriteByte(']')
		}
	}
}

func formatTag(b *strings.Builder, name string, children []Node) {
	b.WriteString("<" + name + ">")
	formatNodes(b, children)
	b.WriteString("</" + name + ">")
}

func writeEscaped(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		if isEscapable(s[i]) {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
