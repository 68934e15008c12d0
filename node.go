package mfm

import "strings"

// Node is a sealed interface representing a node of an MFM-lite syntax tree.
// The unexported marker method prevents external implementations, so the set
// of node kinds is closed and a type switch over it covers every case.
//
// Nodes have value semantics: two parses of the same input produce trees
// that compare equal with reflect.DeepEqual. Trees are never mutated after
// Parse returns them.
type Node interface {
	node()
}

// Text is a leaf holding literal, uninterpreted text.
type Text struct {
	Text string
}

func (Text) node() {}

// Bold is strong text, written **...** or <b>...</b>.
type Bold struct {
	Children []Node
}

func (Bold) node() {}

// Italic is emphasised text, written *...* or <i>...</i>.
type Italic struct {
	Children []Node
}

func (Italic) node() {}

// Strike is struck-through text, written ~~...~~ or <s>...</s>.
type Strike struct {
	Children []Node
}

func (Strike) node() {}

// Link is a hyperlink, written [text](url) or as a bare http(s) URL.
// URL is the literal target; it is not interpreted or validated.
type Link struct {
	URL      string
	Children []Node
}

func (Link) node() {}

// Function is a named visual effect, written $[name content] or
// $[name.key=value,flag content]. Name keeps its source casing; Args is nil
// when the header carries no arguments.
type Function struct {
	Name     string
	Args     map[string]string
	Children []Node
}

func (Function) node() {}

// Small is de-emphasised text, written <small>...</small>.
type Small struct {
	Children []Node
}

func (Small) node() {}

// Center is a centered block, written <center>...</center>.
type Center struct {
	Children []Node
}

func (Center) node() {}

// Interface compliance checks.
var (
	_ Node = Text{}
	_ Node = Bold{}
	_ Node = Italic{}
	_ Node = Strike{}
	_ Node = Link{}
	_ Node = Function{}
	_ Node = Small{}
	_ Node = Center{}
)

// Children returns the children of a container node, or nil for Text.
func Children(n Node) []Node {
	switch v := n.(type) {
	case Bold:
		return v.Children
	case Italic:
		return v.Children
	case Strike:
		return v.Children
	case Link:
		return v.Children
	case Function:
		return v.Children
	case Small:
		return v.Children
	case Center:
		return v.Children
	default:
		return nil
	}
}

// Walk visits nodes depth-first in source order. If fn returns false the
// children of that node are skipped.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if fn(n) {
			Walk(Children(n), fn)
		}
	}
}

// PlainText returns the concatenated Text payloads of nodes with all markup
// removed, e.g. for a page description.
func PlainText(nodes []Node) string {
	var b strings.Builder
	Walk(nodes, func(n Node) bool {
		if t, ok := n.(Text); ok {
			b.WriteString(t.Text)
		}
		return true
	})
	return b.String()
}
