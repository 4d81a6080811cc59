// Package counter counts lines in text files.
package counter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// ErrNotText is returned for content that is not valid UTF-8.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// CountLines reads the file at path and returns its line count.
func CountLines(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if !utf8.Valid(data) {
		return 0, fmt.Errorf("%s: %w", path, ErrNotText)
	}
	return Count(data), nil
}

// Count returns the number of newline-terminated lines in data, plus one for
// a trailing unterminated line.
func Count(data []byte) uint64 {
	n := uint64(bytes.Count(data, []byte{'\n'}))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}
