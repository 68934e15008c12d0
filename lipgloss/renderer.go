package lipgloss

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/mfm"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// minURLWidth is the narrowest cell budget a link target is truncated to.
const minURLWidth = 20

type ansiRenderer struct {
	bold    lipgloss.Style
	italic  lipgloss.Style
	strike  lipgloss.Style
	small   lipgloss.Style
	link    lipgloss.Style
	muted   lipgloss.Style
	effect  lipgloss.Style
	rainbow []lipgloss.Style

	frame    int
	urlWidth int

	// inherit accumulates the styles enclosing the run being rendered so
	// rainbow text keeps them.
	inherit      lipgloss.Style
	rainbowDepth int
	hue          int
}

func newRenderer(theme mfm.Theme, frame int) *ansiRenderer {
	r := &ansiRenderer{
		bold:   lipgloss.NewStyle().Bold(true),
		italic: lipgloss.NewStyle().Italic(true),
		strike: lipgloss.NewStyle().Strikethrough(true),
		small:  lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:   lipgloss.NewStyle().Foreground(ansiColor(theme.Link)).Underline(true),
		muted:  lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		effect: lipgloss.NewStyle().Foreground(ansiColor(theme.Effect)).Bold(true),
		frame:  frame,
		hue:    frame,
	}
	for _, c := range theme.Rainbow {
		r.rainbow = append(r.rainbow, lipgloss.NewStyle().Foreground(ansiColor(c)))
	}
	return r
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// segment is a run of top-level output: either flowing text or a centered
// block.
type segment struct {
	text     string
	centered bool
}

func (r *ansiRenderer) render(runs []mfm.Run, width int) string {
	r.urlWidth = max(width/2, minURLWidth)

	var segments []segment
	var inline bytes.Buffer
	flush := func() {
		if inline.Len() > 0 {
			segments = append(segments, segment{text: inline.String()})
			inline.Reset()
		}
	}
	for _, run := range runs {
		if block, ok := run.(mfm.BlockRun); ok && block.Style == mfm.StyleCenter {
			flush()
			segments = append(segments, segment{text: r.collectInline(block.Runs), centered: true})
			continue
		}
		r.renderInline(run, &inline)
	}
	flush()

	var out []string
	for i, seg := range segments {
		text := seg.text
		if !seg.centered {
			// A centered block always starts on its own line, so one
			// newline at each boundary with it is already implied.
			if i > 0 && segments[i-1].centered {
				text = strings.TrimPrefix(text, "\n")
			}
			if i+1 < len(segments) && segments[i+1].centered {
				text = strings.TrimSuffix(text, "\n")
			}
			if text == "" {
				continue
			}
			out = append(out, lipgloss.NewStyle().Width(width).Render(text))
			continue
		}
		out = append(out, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text))
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

// collectInline renders runs as a single inline string.
func (r *ansiRenderer) collectInline(runs []mfm.Run) string {
	var buf bytes.Buffer
	for _, run := range runs {
		r.renderInline(run, &buf)
	}
	return buf.String()
}

func (r *ansiRenderer) renderInline(run mfm.Run, buf *bytes.Buffer) {
	switch v := run.(type) {
	case mfm.TextRun:
		if r.rainbowDepth > 0 {
			buf.WriteString(r.renderRainbow(sanitize(v.Text)))
			return
		}
		buf.WriteString(sanitize(v.Text))

	case mfm.SpanRun:
		buf.WriteString(r.renderSpan(v))

	case mfm.LinkRun:
		buf.WriteString(r.styled(r.link, v.Runs))
		url := sanitize(v.URL)
		// Bare URLs already show their target.
		if mfm.RunText(v.Runs) != v.URL {
			buf.WriteString(" ")
			buf.WriteString(r.muted.Render("(" + runewidth.Truncate(url, r.urlWidth, "…") + ")"))
		}

	case mfm.BlockRun:
		// Blocks nested inside spans cannot be aligned independently.
		buf.WriteString(r.collectInline(v.Runs))
	}
}

func (r *ansiRenderer) renderSpan(span mfm.SpanRun) string {
	switch span.Style {
	case mfm.StyleBold:
		return r.styled(r.bold, span.Runs)
	case mfm.StyleItalic:
		return r.styled(r.italic, span.Runs)
	case mfm.StyleStrike:
		return r.styled(r.strike, span.Runs)
	case mfm.StyleSmall:
		return r.styled(r.small, span.Runs)
	case mfm.EffectRainbow:
		r.rainbowDepth++
		inner := r.collectInline(span.Runs)
		r.rainbowDepth--
		return inner
	case mfm.EffectShake:
		inner := r.collectInline(span.Runs)
		if r.frame%2 == 1 {
			return " " + inner
		}
		return inner
	case mfm.EffectTada:
		return r.styled(r.effect.Reverse(r.frame%2 == 1), span.Runs)
	case mfm.EffectBounce:
		return r.styled(r.effect.Underline(r.frame%2 == 1), span.Runs)
	default:
		return r.collectInline(span.Runs)
	}
}

// styled renders runs wrapped in s, with s added to the styles inherited
// by rainbow text inside them.
func (r *ansiRenderer) styled(s lipgloss.Style, runs []mfm.Run) string {
	saved := r.inherit
	r.inherit = s.Inherit(saved)
	inner := r.collectInline(runs)
	r.inherit = saved
	return s.Render(inner)
}

// renderRainbow colors each visible grapheme cluster in turn, keeping the
// enclosing styles. The palette shifts by one color per frame and carries
// on across text runs.
func (r *ansiRenderer) renderRainbow(text string) string {
	if len(r.rainbow) == 0 {
		return text
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if strings.TrimSpace(cluster) == "" {
			b.WriteString(cluster)
			continue
		}
		b.WriteString(r.rainbow[r.hue%len(r.rainbow)].Inherit(r.inherit).Render(cluster))
		r.hue++
	}
	return b.String()
}

// sanitize strips escape sequences and control characters from untrusted
// text so it cannot drive the terminal. Tabs and newlines are kept.
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r == '\n' || (r > 0x1f && r != 0x7f && !(r >= 0x80 && r <= 0x9f)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
