package mfm

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values. A negative
// index means no color.
type Theme struct {
	Link    int   // Link text
	Muted   int   // Link targets, small text
	Effect  int   // Tada and bounce accent
	Rainbow []int // Colors cycled by the rainbow effect
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Link:    4,
		Muted:   8,
		Effect:  5,
		Rainbow: []int{1, 3, 2, 6, 4, 5},
	}
}
