package mfm_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/mfm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []mfm.Node
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "plain text",
			input: "hello world",
			want:  []mfm.Node{mfm.Text{Text: "hello world"}},
		},
		{
			name:  "bold",
			input: "**bold**",
			want:  []mfm.Node{mfm.Bold{Children: []mfm.Node{mfm.Text{Text: "bold"}}}},
		},
		{
			name:  "italic",
			input: "*italic*",
			want:  []mfm.Node{mfm.Italic{Children: []mfm.Node{mfm.Text{Text: "italic"}}}},
		},
		{
			name:  "strike",
			input: "~~gone~~",
			want:  []mfm.Node{mfm.Strike{Children: []mfm.Node{mfm.Text{Text: "gone"}}}},
		},
		{
			name:  "italic inside bold",
			input: "**a *b* c**",
			want: []mfm.Node{mfm.Bold{Children: []mfm.Node{
				mfm.Text{Text: "a "},
				mfm.Italic{Children: []mfm.Node{mfm.Text{Text: "b"}}},
				mfm.Text{Text: " c"},
			}}},
		},
		{
			name:  "bold inside italic",
			input: "*a **b** c*",
			want: []mfm.Node{mfm.Italic{Children: []mfm.Node{
				mfm.Text{Text: "a "},
				mfm.Bold{Children: []mfm.Node{mfm.Text{Text: "b"}}},
				mfm.Text{Text: " c"},
			}}},
		},
		{
			name:  "triple asterisks prefer bold outside",
			input: "***x***",
			want: []mfm.Node{mfm.Bold{Children: []mfm.Node{
				mfm.Italic{Children: []mfm.Node{mfm.Text{Text: "x"}}},
			}}},
		},
		{
			name:  "text around markup",
			input: "This is **bold** and *italic*.",
			want: []mfm.Node{
				mfm.Text{Text: "This is "},
				mfm.Bold{Children: []mfm.Node{mfm.Text{Text: "bold"}}},
				mfm.Text{Text: " and "},
				mfm.Italic{Children: []mfm.Node{mfm.Text{Text: "italic"}}},
				mfm.Text{Text: "."},
			},
		},
		{
			name:  "unterminated italic falls back to text",
			input: "*unclosed",
			want:  []mfm.Node{mfm.Text{Text: "*unclosed"}},
		},
		{
			name:  "unterminated bold demotes one asterisk",
			input: "**a*",
			want: []mfm.Node{
				mfm.Text{Text: "*"},
				mfm.Italic{Children: []mfm.Node{mfm.Text{Text: "a"}}},
			},
		},
		{
			name:  "empty pair stays literal",
			input: "****",
			want:  []mfm.Node{mfm.Text{Text: "****"}},
		},
		{
			name:  "single tilde is text",
			input: "~a~",
			want:  []mfm.Node{mfm.Text{Text: "~a~"}},
		},
		{
			name:  "function",
			input: "$[shake Hi]",
			want:  []mfm.Node{mfm.Function{Name: "shake", Children: []mfm.Node{mfm.Text{Text: "Hi"}}}},
		},
		{
			name:  "unknown function still parses",
			input: "$[glorp Hi]",
			want:  []mfm.Node{mfm.Function{Name: "glorp", Children: []mfm.Node{mfm.Text{Text: "Hi"}}}},
		},
		{
			name:  "function with arguments",
			input: "$[spin.speed=2s,left hi]",
			want: []mfm.Node{mfm.Function{
				Name:     "spin",
				Args:     map[string]string{"speed": "2s", "left": ""},
				Children: []mfm.Node{mfm.Text{Text: "hi"}},
			}},
		},
		{
			name:  "function with nested markup",
			input: "$[shake **Shaking Bold**]",
			want: []mfm.Node{mfm.Function{Name: "shake", Children: []mfm.Node{
				mfm.Bold{Children: []mfm.Node{mfm.Text{Text: "Shaking Bold"}}},
			}}},
		},
		{
			name:  "nested functions",
			input: "$[tada $[rainbow x]]",
			want: []mfm.Node{mfm.Function{Name: "tada", Children: []mfm.Node{
				mfm.Function{Name: "rainbow", Children: []mfm.Node{mfm.Text{Text: "x"}}},
			}}},
		},
		{
			name:  "function without content is text",
			input: "$[shake]",
			want:  []mfm.Node{mfm.Text{Text: "$[shake]"}},
		},
		{
			name:  "unterminated function is text",
			input: "$[shake Hi",
			want:  []mfm.Node{mfm.Text{Text: "$[shake Hi"}},
		},
		{
			name:  "link",
			input: "[site](https://e.com)",
			want:  []mfm.Node{mfm.Link{URL: "https://e.com", Children: []mfm.Node{mfm.Text{Text: "site"}}}},
		},
		{
			name:  "link with styled text",
			input: "[**me**](https://e.com)",
			want: []mfm.Node{mfm.Link{URL: "https://e.com", Children: []mfm.Node{
				mfm.Bold{Children: []mfm.Node{mfm.Text{Text: "me"}}},
			}}},
		},
		{
			name:  "link url keeps balanced parentheses",
			input: "[w](https://e.com/a_(b))",
			want:  []mfm.Node{mfm.Link{URL: "https://e.com/a_(b)", Children: []mfm.Node{mfm.Text{Text: "w"}}}},
		},
		{
			name:  "links do not nest",
			input: "[a [b](c)](d)",
			want:  []mfm.Node{mfm.Link{URL: "d", Children: []mfm.Node{mfm.Text{Text: "a [b](c)"}}}},
		},
		{
			name:  "link url with space is text",
			input: "[a](b c)",
			want:  []mfm.Node{mfm.Text{Text: "[a](b c)"}},
		},
		{
			name:  "brackets without url are text",
			input: "[note]",
			want:  []mfm.Node{mfm.Text{Text: "[note]"}},
		},
		{
			name:  "small tag",
			input: "<small>fine print</small>",
			want:  []mfm.Node{mfm.Small{Children: []mfm.Node{mfm.Text{Text: "fine print"}}}},
		},
		{
			name:  "center tag",
			input: "<center>Centered Text</center>",
			want:  []mfm.Node{mfm.Center{Children: []mfm.Node{mfm.Text{Text: "Centered Text"}}}},
		},
		{
			name:  "nested center tags pair by depth",
			input: "<center><center>a</center>b</center>",
			want: []mfm.Node{mfm.Center{Children: []mfm.Node{
				mfm.Center{Children: []mfm.Node{mfm.Text{Text: "a"}}},
				mfm.Text{Text: "b"},
			}}},
		},
		{
			name:  "tag forms of bold italic strike",
			input: "<b>x</b><i>y</i><s>z</s>",
			want: []mfm.Node{
				mfm.Bold{Children: []mfm.Node{mfm.Text{Text: "x"}}},
				mfm.Italic{Children: []mfm.Node{mfm.Text{Text: "y"}}},
				mfm.Strike{Children: []mfm.Node{mfm.Text{Text: "z"}}},
			},
		},
		{
			name:  "tags are case sensitive",
			input: "<CENTER>x</CENTER>",
			want:  []mfm.Node{mfm.Text{Text: "<CENTER>x</CENTER>"}},
		},
		{
			name:  "unterminated tag is text",
			input: "<center>oops",
			want:  []mfm.Node{mfm.Text{Text: "<center>oops"}},
		},
		{
			name:  "escaped delimiters",
			input: `\*not italic\* \$\[x\]`,
			want:  []mfm.Node{mfm.Text{Text: "*not italic* $[x]"}},
		},
		{
			name:  "backslash before ordinary character is kept",
			input: `a\b`,
			want:  []mfm.Node{mfm.Text{Text: `a\b`}},
		},
		{
			name:  "bare url",
			input: "see https://example.com/a_(b). ok",
			want: []mfm.Node{
				mfm.Text{Text: "see "},
				mfm.Link{URL: "https://example.com/a_(b)", Children: []mfm.Node{mfm.Text{Text: "https://example.com/a_(b)"}}},
				mfm.Text{Text: ". ok"},
			},
		},
		{
			name:  "bare url in parentheses",
			input: "(https://e.com)",
			want: []mfm.Node{
				mfm.Text{Text: "("},
				mfm.Link{URL: "https://e.com", Children: []mfm.Node{mfm.Text{Text: "https://e.com"}}},
				mfm.Text{Text: ")"},
			},
		},
		{
			name:  "url glued to a word is text",
			input: "xhttps://e.com",
			want:  []mfm.Node{mfm.Text{Text: "xhttps://e.com"}},
		},
		{
			name:  "scheme alone is text",
			input: "https:// nothing",
			want:  []mfm.Node{mfm.Text{Text: "https:// nothing"}},
		},
		{
			name:  "delimiter inside link does not close outer bold",
			input: "**a [b**](u)",
			want: []mfm.Node{
				mfm.Text{Text: "**a "},
				mfm.Link{URL: "u", Children: []mfm.Node{mfm.Text{Text: "b**"}}},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mfm.Parse(tt.input))
		})
	}
}

func TestParse_SampleBio(t *testing.T) {
	t.Parallel()

	nodes := mfm.Parse(mfm.SampleBio)

	var fns []string
	var links []string
	centers := 0
	mfm.Walk(nodes, func(n mfm.Node) bool {
		switch v := n.(type) {
		case mfm.Function:
			fns = append(fns, v.Name)
		case mfm.Link:
			links = append(links, v.URL)
		case mfm.Center:
			centers++
		}
		return true
	})

	assert.Equal(t, []string{"shake", "rainbow", "tada", "bounce", "shake", "rainbow"}, fns)
	assert.Equal(t, []string{"https://openclaw.ai"}, links)
	assert.Equal(t, 1, centers)
	assert.Contains(t, mfm.PlainText(nodes), "Centered Text")
	assert.NotContains(t, mfm.PlainText(nodes), "$[")
}

func TestParse_DepthCap(t *testing.T) {
	t.Parallel()

	t.Run("nested functions stop at the cap", func(t *testing.T) {
		t.Parallel()
		input := strings.Repeat("$[shake ", 1000) + "x" + strings.Repeat("]", 1000)
		nodes := mfm.Parse(input)
		assert.Equal(t, mfm.DefaultMaxDepth, treeHeight(nodes))
		assert.Contains(t, mfm.PlainText(nodes), "$[shake ")
	})

	t.Run("nested bold tags stop at the cap", func(t *testing.T) {
		t.Parallel()
		input := strings.Repeat("<b>", 1000) + "x" + strings.Repeat("</b>", 1000)
		nodes := mfm.Parse(input)
		assert.Equal(t, mfm.DefaultMaxDepth, treeHeight(nodes))
	})

	t.Run("openers without closers are text", func(t *testing.T) {
		t.Parallel()
		for _, opener := range []string{"**", "*", "~~", "<b>", "<center>", "$[shake ", "["} {
			input := strings.Repeat(opener, 1000)
			assert.Equal(t, []mfm.Node{mfm.Text{Text: input}}, mfm.Parse(input), opener)
		}
	})

	t.Run("alternating openers terminate", func(t *testing.T) {
		t.Parallel()
		input := strings.Repeat("*a **b ~~c [d ", 2000)
		nodes := mfm.Parse(input)
		assert.LessOrEqual(t, treeHeight(nodes), mfm.DefaultMaxDepth)
		assert.NotEmpty(t, nodes)
	})

	t.Run("custom cap", func(t *testing.T) {
		t.Parallel()
		nodes := mfm.Parse("**a *b* c**", mfm.WithMaxDepth(1))
		assert.Equal(t, []mfm.Node{mfm.Bold{Children: []mfm.Node{mfm.Text{Text: "a *b* c"}}}}, nodes)
	})

	t.Run("zero cap disables markup", func(t *testing.T) {
		t.Parallel()
		nodes := mfm.Parse("**a**", mfm.WithMaxDepth(0))
		assert.Equal(t, []mfm.Node{mfm.Text{Text: "**a**"}}, nodes)
	})
}

func TestParse_Deterministic(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		input := randomSource(rng)
		first := mfm.Parse(input)
		second := mfm.Parse(input)
		require.Equal(t, first, second, "input %q", input)
		assert.LessOrEqual(t, treeHeight(first), mfm.DefaultMaxDepth, "input %q", input)
	}
}

func TestParse_Total(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		input := randomSource(rng)
		assert.NotPanics(t, func() {
			mfm.Render(mfm.Parse(input), mfm.DefaultStyleTable())
		}, "input %q", input)
	}
}

// randomSource builds a short string from fragments that are likely to
// interact: delimiters, partial constructs and plain words.
func randomSource(rng *rand.Rand) string {
	fragments := []string{
		"a", "b", " ", "\n", "*", "**", "~~", "~", "[", "]", "(", ")", "](",
		"$[shake ", "$[glorp ", "$[spin.x=1 ", "$", "<b>", "</b>", "<center>",
		"</center>", "<small>", "</small>", "<i>", "</s>", `\`, "https://e.com",
		"http", "h",
	}
	var b strings.Builder
	n := 1 + rng.Intn(14)
	for i := 0; i < n; i++ {
		b.WriteString(fragments[rng.Intn(len(fragments))])
	}
	return b.String()
}

// treeHeight returns the number of container nodes on the longest path.
func treeHeight(nodes []mfm.Node) int {
	height := 0
	for _, n := range nodes {
		children := mfm.Children(n)
		if _, ok := n.(mfm.Text); ok {
			continue
		}
		if h := 1 + treeHeight(children); h > height {
			height = h
		}
	}
	return height
}

// adversarialInputs are sources whose openers mostly never close, the worst
// case for closer scanning.
var adversarialInputs = map[string]string{
	"alternating": "*a **b ~~c [d ",
	"asterisks":   "*",
	"functions":   "$[shake ",
	"tags":        "<b>",
	"links":       "[a](",
}

func TestParse_LinearTime(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	// Best of several runs, to keep scheduler noise out of the ratio.
	measure := func(input string) time.Duration {
		best := time.Duration(1<<63 - 1)
		for i := 0; i < 3; i++ {
			start := time.Now()
			mfm.Parse(input)
			if d := time.Since(start); d < best {
				best = d
			}
		}
		return best
	}

	for name, unit := range adversarialInputs {
		t.Run(name, func(t *testing.T) {
			small := measure(strings.Repeat(unit, 1000))
			large := measure(strings.Repeat(unit, 8000))
			// Linear growth is 8x and quadratic 64x; leave room for noise.
			limit := 24 * max(small, time.Millisecond)
			assert.Less(t, large, limit, "small %v large %v", small, large)
		})
	}
}

func BenchmarkParse(b *testing.B) {
	for name, unit := range adversarialInputs {
		for _, n := range []int{1000, 2000, 4000} {
			input := strings.Repeat(unit, n)
			b.Run(fmt.Sprintf("%s/%dx", name, n), func(b *testing.B) {
				b.SetBytes(int64(len(input)))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					mfm.Parse(input)
				}
			})
		}
	}
	b.Run("sample", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			mfm.Parse(mfm.SampleBio)
		}
	})
}
