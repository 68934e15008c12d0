package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/mfm"
	"github.com/fwojciec/mfm/fs"
	mfmjson "github.com/fwojciec/mfm/json"
)

// source is a named biography text.
type source struct {
	name string
	text string
}

// loadSources resolves the biographies to render: the sample, the files
// named by args (globs expanded), or stdin when there are no args.
func loadSources(args []string, sample bool, maxBytes int64) ([]source, error) {
	if sample {
		if len(args) > 0 {
			return nil, fmt.Errorf("-sample takes no file arguments")
		}
		return []source{{name: "sample", text: mfm.SampleBio}}, nil
	}
	if len(args) == 0 {
		text, err := fs.Read(os.Stdin, maxBytes)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return []source{{name: "stdin", text: text}}, nil
	}

	paths, err := fs.Expand(args)
	if err != nil {
		return nil, err
	}
	sources := make([]source, 0, len(paths))
	for _, path := range paths {
		text, err := fs.Load(path, maxBytes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		sources = append(sources, source{name: path, text: text})
	}
	return sources, nil
}

// resolveTable returns the style table for the flags. A styles file is
// applied on top of the default or reduced-motion table.
func resolveTable(stylesPath string, reducedMotion bool) (mfm.StyleTable, error) {
	table := mfm.DefaultStyleTable()
	if reducedMotion {
		table = mfm.ReducedMotionStyleTable()
	}
	if stylesPath == "" {
		return table, nil
	}
	table, err := mfmjson.LoadStyleTable(stylesPath, table)
	if err != nil {
		return mfm.StyleTable{}, fmt.Errorf("load styles: %w", err)
	}
	if reducedMotion {
		table = withoutMotion(table)
	}
	return table, nil
}

// withoutMotion removes functions mapped to motion effects.
func withoutMotion(t mfm.StyleTable) mfm.StyleTable {
	for _, name := range t.Names() {
		if s, _ := t.Lookup(name); s != mfm.EffectRainbow {
			t = t.Without(name)
		}
	}
	return t
}
