package mfm

import "strings"

// DefaultMaxDepth is the default nesting cap. Content nested deeper than
// this is kept as literal text.
const DefaultMaxDepth = 20

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	maxDepth int
}

// WithMaxDepth sets the maximum number of nested container nodes. Regions
// at the cap are emitted as a single literal Text node. Values below zero
// are treated as zero, which disables all markup.
func WithMaxDepth(n int) ParseOption {
	return func(c *parseConfig) {
		if n < 0 {
			n = 0
		}
		c.maxDepth = n
	}
}

// Parse converts MFM-lite source into a forest of nodes. It never fails:
// malformed or unterminated markup is kept as literal text.
//
// Recognised syntax, in priority order at each position:
//
//	\x                  escape; x is one of \ * ~ [ ] ( ) $ < >
//	$[name content]     function, optionally $[name.k=v,flag content]
//	[text](url)         link
//	**b** *i* ~~s~~     paired delimiters, nearest closer at the same depth
//	<b> <i> <s> <small> <center>  tags with matching close tags
//	https://...         bare URL
func Parse(input string, opts ...ParseOption) []Node {
	cfg := parseConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	if input == "" {
		return nil
	}
	p := &parser{src: input, maxDepth: cfg.maxDepth}
	p.pairDelimiters()
	return p.parseRegion(0, len(input), 0, false)
}

// escapable lists the characters that may follow a backslash escape.
const escapable = `\*~[]()$<>`

// specials are the bytes at which the region parser has to stop and look.
const specials = `\$[*~<h`

func isEscapable(c byte) bool {
	return strings.IndexByte(escapable, c) >= 0
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// tagNames are the recognised wrapper tags. Close tags are "</name>".
var tagNames = []string{"center", "small", "b", "i", "s"}

// scanTag reports the tag starting at s[i], if any.
func scanTag(s string, i int) (name string, closing bool, n int) {
	if i >= len(s) || s[i] != '<' {
		return "", false, 0
	}
	k := i + 1
	if k < len(s) && s[k] == '/' {
		closing = true
		k++
	}
	for _, name := range tagNames {
		if strings.HasPrefix(s[k:], name) && k+len(name) < len(s) && s[k+len(name)] == '>' {
			return name, closing, k + len(name) + 1 - i
		}
	}
	return "", false, 0
}

func tagNode(name string, children []Node) Node {
	switch name {
	case "b":
		return Bold{Children: children}
	case "i":
		return Italic{Children: children}
	case "s":
		return Strike{Children: children}
	case "small":
		return Small{Children: children}
	default:
		return Center{Children: children}
	}
}

type parser struct {
	src      string
	maxDepth int

	// match maps the index of '[', '(' or an opening tag to the index of
	// its partner, or -1. Escaped characters never pair.
	match []int
}

// pairDelimiters pairs brackets, parentheses and tags in one pass using a
// stack per delimiter family. Unmatched closers are ignored.
func (p *parser) pairDelimiters() {
	src := p.src
	p.match = make([]int, len(src))
	for i := range p.match {
		p.match[i] = -1
	}
	var brackets, parens []int
	tags := make(map[string][]int)
	pop := func(stack *[]int, at int) {
		if n := len(*stack); n > 0 {
			p.match[(*stack)[n-1]] = at
			*stack = (*stack)[:n-1]
		}
	}
	for i := 0; i < len(src); {
		switch c := src[i]; c {
		case '\\':
			if i+1 < len(src) && isEscapable(src[i+1]) {
				i += 2
				continue
			}
		case '[':
			brackets = append(brackets, i)
		case ']':
			pop(&brackets, i)
		case '(':
			parens = append(parens, i)
		case ')':
			pop(&parens, i)
		case '<':
			if name, closing, n := scanTag(src, i); n > 0 {
				stack := tags[name]
				if closing {
					pop(&stack, i)
				} else {
					stack = append(stack, i)
				}
				tags[name] = stack
				i += n
				continue
			}
		}
		i++
	}
}

// parseRegion parses src[start:end]. The extent of the region is already
// known, so nothing inside it can close beyond end.
func (p *parser) parseRegion(start, end, depth int, inLink bool) []Node {
	if start >= end {
		return nil
	}
	if depth >= p.maxDepth {
		return []Node{Text{Text: p.src[start:end]}}
	}
	r := &region{p: p, start: start, end: end, depth: depth, inLink: inLink}
	return r.parse()
}

// region holds per-region parse state. Closer scans are memoised by
// (delimiter, position, level) so each position is scanned at most once
// per delimiter kind and nesting level.
type region struct {
	p      *parser
	start  int
	end    int
	depth  int
	inLink bool

	memo map[scanKey]int

	nodes []Node
	text  strings.Builder
}

type delim uint8

const (
	delimBold delim = iota
	delimItalic
	delimStrike
)

type scanKey struct {
	d     delim
	pos   int
	level int
}

func (r *region) flush() {
	if r.text.Len() > 0 {
		r.nodes = append(r.nodes, Text{Text: r.text.String()})
		r.text.Reset()
	}
}

func (r *region) emit(n Node) {
	r.flush()
	r.nodes = append(r.nodes, n)
}

func (r *region) parse() []Node {
	src := r.p.src
	for i := r.start; i < r.end; {
		var (
			n    Node
			next int
			ok   bool
		)
		switch src[i] {
		case '\\':
			if i+1 < r.end && isEscapable(src[i+1]) {
				r.text.WriteByte(src[i+1])
				i += 2
				continue
			}
		case '$':
			if i+1 < r.end && src[i+1] == '[' {
				n, next, ok = r.function(i)
			}
		case '[':
			if !r.inLink {
				n, next, ok = r.link(i)
			}
		case '*', '~':
			n, next, ok = r.paired(i)
		case '<':
			n, next, ok = r.tag(i)
		case 'h':
			if !r.inLink {
				n, next, ok = r.autolink(i)
			}
		}
		if ok {
			r.emit(n)
			i = next
			continue
		}
		// Copy up to the next byte that could start markup.
		k := strings.IndexAny(src[i+1:r.end], specials)
		if k < 0 {
			k = r.end
		} else {
			k += i + 1
		}
		r.text.WriteString(src[i:k])
		i = k
	}
	r.flush()
	return r.nodes
}

// function parses $[name content] or $[name.args content] at src[i].
func (r *region) function(i int) (Node, int, bool) {
	src := r.p.src
	closeAt := r.p.match[i+1]
	if closeAt < 0 || closeAt >= r.end {
		return nil, 0, false
	}
	k := i + 2
	for k < closeAt && isAlnum(src[k]) {
		k++
	}
	if k == i+2 {
		return nil, 0, false
	}
	name := src[i+2 : k]
	var args map[string]string
	if k < closeAt && src[k] == '.' {
		a := k + 1
		for k = a; k < closeAt && isArgChar(src[k]); k++ {
		}
		args = parseArgs(src[a:k])
	}
	if k >= closeAt || !isSpace(src[k]) {
		return nil, 0, false
	}
	children := r.p.parseRegion(k+1, closeAt, r.depth+1, r.inLink)
	return Function{Name: name, Args: args, Children: children}, closeAt + 1, true
}

func isArgChar(c byte) bool {
	return isAlnum(c) || strings.IndexByte("_-.=,:#%+", c) >= 0
}

// parseArgs parses "k=v,flag" into a map. Empty keys are dropped and an
// empty result is nil.
func parseArgs(s string) map[string]string {
	var args map[string]string
	for _, item := range strings.Split(s, ",") {
		key, value, _ := strings.Cut(item, "=")
		if key == "" {
			continue
		}
		if args == nil {
			args = make(map[string]string)
		}
		args[key] = value
	}
	return args
}

// link parses [text](url) at src[i].
func (r *region) link(i int) (Node, int, bool) {
	src := r.p.src
	textEnd := r.p.match[i]
	if textEnd < 0 || textEnd+1 >= r.end || src[textEnd+1] != '(' {
		return nil, 0, false
	}
	urlEnd := r.p.match[textEnd+1]
	if urlEnd < 0 || urlEnd >= r.end {
		return nil, 0, false
	}
	url := src[textEnd+2 : urlEnd]
	if !validLinkURL(url) {
		return nil, 0, false
	}
	children := r.p.parseRegion(i+1, textEnd, r.depth+1, true)
	return Link{URL: url, Children: children}, urlEnd + 1, true
}

func validLinkURL(url string) bool {
	if url == "" {
		return false
	}
	for i := 0; i < len(url); i++ {
		if c := url[i]; isSpace(c) || c == '[' || c == ']' || c == '<' || c == '>' {
			return false
		}
	}
	return true
}

// tag parses <name>...</name> at src[i].
func (r *region) tag(i int) (Node, int, bool) {
	end, ok := r.tagEnd(i)
	if !ok {
		return nil, 0, false
	}
	name, _, n := scanTag(r.p.src, i)
	closeAt := r.p.match[i]
	children := r.p.parseRegion(i+n, closeAt, r.depth+1, r.inLink)
	return tagNode(name, children), end, true
}

// tagEnd returns the index just past the close tag paired with the opening
// tag at src[i], if both lie inside the region.
func (r *region) tagEnd(i int) (int, bool) {
	name, closing, n := scanTag(r.p.src, i)
	if n == 0 || closing {
		return 0, false
	}
	closeAt := r.p.match[i]
	if closeAt < 0 {
		return 0, false
	}
	end := closeAt + len(name) + 3
	if end > r.end {
		return 0, false
	}
	return end, true
}

// groupEnd returns the index just past the bracket group starting at
// src[i], including a directly following parenthesised group.
func (r *region) groupEnd(i int) (int, bool) {
	closeAt := r.p.match[i]
	if closeAt < 0 || closeAt >= r.end {
		return 0, false
	}
	end := closeAt + 1
	if end < r.end && r.p.src[end] == '(' {
		if c := r.p.match[end]; c >= 0 && c < r.end {
			end = c + 1
		}
	}
	return end, true
}

// run counts consecutive c starting at src[i], capped at 3.
func (r *region) run(i int, c byte) int {
	n := 0
	for i+n < r.end && n < 3 && r.p.src[i+n] == c {
		n++
	}
	return n
}

// paired parses **bold**, *italic* or ~~strike~~ at src[i]. The longer
// delimiter is preferred; on failure only the first character is demoted.
func (r *region) paired(i int) (Node, int, bool) {
	c := r.p.src[i]
	n := r.run(i, c)
	if c == '~' {
		if n < 2 {
			return nil, 0, false
		}
		if e := r.closer(delimStrike, i+2, 0); e > i+2 {
			return Strike{Children: r.p.parseRegion(i+2, e, r.depth+1, r.inLink)}, e + 2, true
		}
		return nil, 0, false
	}
	if n >= 2 {
		if e := r.closer(delimBold, i+2, 0); e > i+2 {
			return Bold{Children: r.p.parseRegion(i+2, e, r.depth+1, r.inLink)}, e + 2, true
		}
	}
	if e := r.closer(delimItalic, i+1, 0); e > i+1 {
		return Italic{Children: r.p.parseRegion(i+1, e, r.depth+1, r.inLink)}, e + 1, true
	}
	return nil, 0, false
}

// closer returns the index of the nearest closing delimiter of kind d at or
// after from, skipping escapes, bracket groups, tags and nested paired
// delimiters of other kinds. It returns -1 when there is none.
func (r *region) closer(d delim, from, level int) int {
	if r.memo == nil {
		r.memo = make(map[scanKey]int)
	}
	src := r.p.src
	var path []int
	result := -1
	for j := from; j < r.end; {
		if src[j] != '\\' && src[j] != '[' && src[j] != '<' && src[j] != '*' && src[j] != '~' {
			k := strings.IndexAny(src[j:r.end], `\[<*~`)
			if k < 0 {
				break
			}
			j += k
		}
		key := scanKey{d: d, pos: j, level: level}
		if v, ok := r.memo[key]; ok {
			result = v
			break
		}
		path = append(path, j)
		next, found := r.step(d, j, level)
		if found {
			result = j
			break
		}
		j = next
	}
	for _, pos := range path {
		r.memo[scanKey{d: d, pos: pos, level: level}] = result
	}
	return result
}

// step advances a closer scan for d over the construct at src[j].
func (r *region) step(d delim, j, level int) (next int, found bool) {
	src := r.p.src
	switch src[j] {
	case '\\':
		if j+1 < r.end && isEscapable(src[j+1]) {
			return j + 2, false
		}
	case '[':
		if e, ok := r.groupEnd(j); ok {
			return e, false
		}
	case '<':
		if e, ok := r.tagEnd(j); ok {
			return e, false
		}
	case '*':
		n := r.run(j, '*')
		switch d {
		case delimBold:
			if n >= 2 {
				return j, true
			}
			if e, ok := r.nested(delimItalic, j, 1, level); ok {
				return e, false
			}
		case delimItalic:
			if n != 2 {
				return j, true
			}
			if e, ok := r.nested(delimBold, j, 2, level); ok {
				return e, false
			}
			return j, true
		default:
			if n >= 2 {
				if e, ok := r.nested(delimBold, j, 2, level); ok {
					return e, false
				}
			}
			if e, ok := r.nested(delimItalic, j, 1, level); ok {
				return e, false
			}
		}
	case '~':
		if r.run(j, '~') >= 2 {
			if d == delimStrike {
				return j, true
			}
			if e, ok := r.nested(delimStrike, j, 2, level); ok {
				return e, false
			}
		}
	}
	return j + 1, false
}

// nested looks for a complete nested pair of kind d opening at src[j] with
// a delimiter of the given width. Past the depth cap nothing nests.
func (r *region) nested(d delim, j, width, level int) (int, bool) {
	if r.depth+level+1 >= r.p.maxDepth {
		return 0, false
	}
	e := r.closer(d, j+width, level+1)
	if e <= j+width {
		return 0, false
	}
	return e + width, true
}

// autolink parses a bare http(s) URL at src[i].
func (r *region) autolink(i int) (Node, int, bool) {
	src := r.p.src[:r.end]
	rest := src[i:]
	var scheme int
	switch {
	case strings.HasPrefix(rest, "https://"):
		scheme = len("https://")
	case strings.HasPrefix(rest, "http://"):
		scheme = len("http://")
	default:
		return nil, 0, false
	}
	if i > r.start && isAlnum(src[i-1]) {
		return nil, 0, false
	}
	end := i + scheme
	depth, openAt := 0, -1
scan:
	for ; end < len(src); end++ {
		switch c := src[end]; {
		case c == '(':
			if depth == 0 {
				openAt = end
			}
			depth++
		case c == ')':
			if depth == 0 {
				break scan
			}
			depth--
		case !isURLChar(c):
			break scan
		}
	}
	if depth > 0 {
		end = openAt
	}
	for end > i+scheme && strings.IndexByte(".,:;!?'", src[end-1]) >= 0 {
		end--
	}
	if end == i+scheme {
		return nil, 0, false
	}
	url := src[i:end]
	return Link{URL: url, Children: []Node{Text{Text: url}}}, end, true
}

func isURLChar(c byte) bool {
	if c <= ' ' || c >= 0x7f {
		return false
	}
	return strings.IndexByte(`<>[]"\*`+"`", c) < 0
}
