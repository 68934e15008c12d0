// Package fs loads biography sources from the filesystem: glob expansion,
// a size limit and Unicode normalization.
package fs

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/mfm"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxSourceBytes is the largest source Load accepts by default.
const DefaultMaxSourceBytes = 64 << 10

// Load reads a biography source from path. Sources larger than maxBytes
// fail with mfm.ErrSourceTooLarge; a non-positive maxBytes selects
// DefaultMaxSourceBytes. The text is normalized with Normalize.
func Load(path string, maxBytes int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer f.Close()
	return Read(f, maxBytes)
}

// Read reads a biography source from r with the same limit and
// normalization as Load.
func Read(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxSourceBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("source exceeds %d bytes: %w", maxBytes, mfm.ErrSourceTooLarge)
	}
	return Normalize(string(data)), nil
}

// Normalize prepares text for parsing. Invalid UTF-8 is replaced with
// U+FFFD, line endings become \n, and the result is in NFC so that
// composed and decomposed input parse to the same tree.
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\ufffd")
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimPrefix(s, "\ufeff")
	return norm.NFC.String(s)
}
