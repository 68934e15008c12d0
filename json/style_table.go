package json

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/mfm"
)

// styleTableDTO is the v1 configuration file format for a style table.
//
//	{
//	  "version": 1,
//	  "functions": {"sparkle": "rainbow", "jelly": "tada"},
//	  "remove": ["shake"]
//	}
type styleTableDTO struct {
	Version   int               `json:"version"`
	Functions map[string]string `json:"functions,omitempty"`
	Remove    []string          `json:"remove,omitempty"`
}

// UnmarshalStyleTable applies a style table configuration to base and
// returns the resulting table. Functions may only map to effects; anything
// else fails with mfm.ErrValidation.
func UnmarshalStyleTable(data []byte, base mfm.StyleTable) (mfm.StyleTable, error) {
	var dto styleTableDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return mfm.StyleTable{}, fmt.Errorf("unmarshal style table: %w", err)
	}
	if dto.Version != version {
		return mfm.StyleTable{}, fmt.Errorf("unsupported style table version %d: %w", dto.Version, mfm.ErrValidation)
	}
	table := base
	for _, name := range dto.Remove {
		table = table.Without(name)
	}
	for name, value := range dto.Functions {
		if !validFunctionName(name) {
			return mfm.StyleTable{}, fmt.Errorf("invalid function name %q: %w", name, mfm.ErrValidation)
		}
		style, err := mfm.ParseStyle(value)
		if err != nil {
			return mfm.StyleTable{}, fmt.Errorf("function %q: %w", name, err)
		}
		if !style.IsEffect() {
			return mfm.StyleTable{}, fmt.Errorf("function %q: %s is not an effect: %w", name, style, mfm.ErrValidation)
		}
		table = table.With(name, style)
	}
	return table, nil
}

// MarshalStyleTable serializes a style table in the configuration format.
func MarshalStyleTable(t mfm.StyleTable) ([]byte, error) {
	dto := styleTableDTO{Version: version, Functions: make(map[string]string)}
	for _, name := range t.Names() {
		s, _ := t.Lookup(name)
		dto.Functions[name] = s.String()
	}
	return json.MarshalIndent(dto, "", "  ")
}

// LoadStyleTable reads a style table configuration file and applies it to
// base.
func LoadStyleTable(path string, base mfm.StyleTable) (mfm.StyleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mfm.StyleTable{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalStyleTable(data, base)
}

// validFunctionName reports whether name could appear in a function header.
func validFunctionName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
