package mfm

import (
	"fmt"
	"sort"
	"strings"
)

// Style is a presentation treatment attached to a styled span or block.
type Style int

// Node-kind treatments.
const (
	StyleBold Style = iota + 1
	StyleItalic
	StyleStrike
	StyleSmall
	StyleCenter
)

// Function effects.
const (
	EffectShake Style = iota + 100
	EffectRainbow
	EffectTada
	EffectBounce
)

var styleNames = map[Style]string{
	StyleBold:     "bold",
	StyleItalic:   "italic",
	StyleStrike:   "strike",
	StyleSmall:    "small",
	StyleCenter:   "center",
	EffectShake:   "shake",
	EffectRainbow: "rainbow",
	EffectTada:    "tada",
	EffectBounce:  "bounce",
}

// String returns the lowercase name of the style.
func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// IsEffect reports whether s is a function effect rather than a node-kind
// treatment.
func (s Style) IsEffect() bool {
	return s >= EffectShake && s <= EffectBounce
}

// ParseStyle returns the style with the given name, case-insensitively.
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown style %q: %w", name, ErrValidation)
}

// StyleTable maps function names to effects. Names are matched
// case-insensitively. A StyleTable is immutable: With returns a copy, so a
// table can be shared between concurrent renders.
type StyleTable struct {
	functions map[string]Style
}

// NewStyleTable creates a table from a name to effect mapping. Keys are
// lowercased; the map is copied.
func NewStyleTable(functions map[string]Style) StyleTable {
	t := StyleTable{functions: make(map[string]Style, len(functions))}
	for name, s := range functions {
		t.functions[strings.ToLower(name)] = s
	}
	return t
}

// DefaultStyleTable returns the table for the effects supported by the
// profile page.
func DefaultStyleTable() StyleTable {
	return NewStyleTable(map[string]Style{
		"shake":   EffectShake,
		"rainbow": EffectRainbow,
		"tada":    EffectTada,
		"bounce":  EffectBounce,
		"jelly":   EffectBounce,
	})
}

// ReducedMotionStyleTable returns a table for viewers who prefer reduced
// motion. Only colour effects are kept; motion effects render unstyled.
func ReducedMotionStyleTable() StyleTable {
	return NewStyleTable(map[string]Style{
		"rainbow": EffectRainbow,
	})
}

// With returns a copy of t with name mapped to s.
func (t StyleTable) With(name string, s Style) StyleTable {
	c := NewStyleTable(t.functions)
	c.functions[strings.ToLower(name)] = s
	return c
}

// Without returns a copy of t with name removed.
func (t StyleTable) Without(name string) StyleTable {
	c := NewStyleTable(t.functions)
	delete(c.functions, strings.ToLower(name))
	return c
}

// Lookup returns the effect for a function name.
func (t StyleTable) Lookup(name string) (Style, bool) {
	s, ok := t.functions[strings.ToLower(name)]
	return s, ok
}

// Names returns the function names in the table, sorted.
func (t StyleTable) Names() []string {
	names := make([]string, 0, len(t.functions))
	for name := range t.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
