// Package html renders MFM-lite runs as an HTML fragment using the
// golang.org/x/net/html node tree, so every text payload and attribute is
// escaped by the serializer.
package html

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/fwojciec/mfm"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WrapperClass is the class list of the element wrapping a rendered
// biography. Whitespace in text is preserved.
const WrapperClass = "whitespace-pre-wrap break-words"

// LinkClass is the class list of link anchors.
const LinkClass = "text-blue-500 hover:underline"

// safeSchemes are the link schemes allowed to reach an href.
var safeSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// Node returns the wrapper element for runs. Extra classes are appended to
// WrapperClass.
func Node(runs []mfm.Run, class string) *html.Node {
	root := element(atom.Div, strings.TrimSpace(WrapperClass+" "+class))
	appendRuns(root, runs)
	return root
}

// Render writes runs to w as an HTML fragment.
func Render(w io.Writer, runs []mfm.Run, class string) error {
	if err := html.Render(w, Node(runs, class)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// RenderString returns runs as an HTML fragment.
func RenderString(runs []mfm.Run, class string) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, runs, class); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SafeURL reports whether a link target may be emitted as an href.
func SafeURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return safeSchemes[strings.ToLower(u.Scheme)]
}

func appendRuns(parent *html.Node, runs []mfm.Run) {
	for _, run := range runs {
		appendRun(parent, run)
	}
}

func appendRun(parent *html.Node, run mfm.Run) {
	switch v := run.(type) {
	case mfm.TextRun:
		parent.AppendChild(&html.Node{Type: html.TextNode, Data: v.Text})

	case mfm.SpanRun:
		el := spanElement(v.Style)
		if el == nil {
			appendRuns(parent, v.Runs)
			return
		}
		appendRuns(el, v.Runs)
		parent.AppendChild(el)

	case mfm.LinkRun:
		if !SafeURL(v.URL) {
			appendRuns(parent, v.Runs)
			return
		}
		el := element(atom.A, LinkClass)
		el.Attr = append(el.Attr,
			html.Attribute{Key: "href", Val: v.URL},
			html.Attribute{Key: "target", Val: "_blank"},
			html.Attribute{Key: "rel", Val: "noopener noreferrer"},
		)
		appendRuns(el, v.Runs)
		parent.AppendChild(el)

	case mfm.BlockRun:
		if v.Style != mfm.StyleCenter {
			appendRuns(parent, v.Runs)
			return
		}
		el := element(atom.Div, "text-center w-full")
		appendRuns(el, v.Runs)
		parent.AppendChild(el)
	}
}

// spanElement returns the empty element for an inline style, or nil when
// the style has no markup.
func spanElement(s mfm.Style) *html.Node {
	switch s {
	case mfm.StyleBold:
		return element(atom.Strong, "font-bold")
	case mfm.StyleItalic:
		return element(atom.Em, "italic")
	case mfm.StyleStrike:
		return element(atom.S, "line-through")
	case mfm.StyleSmall:
		return element(atom.Small, "text-sm opacity-80")
	case mfm.EffectShake, mfm.EffectRainbow, mfm.EffectTada, mfm.EffectBounce:
		return element(atom.Span, "mfm-"+s.String())
	default:
		return nil
	}
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}
