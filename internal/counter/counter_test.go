package counter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected uint64
	}{
		{name: "empty", content: "", expected: 0},
		{name: "single newline", content: "\n", expected: 1},
		{name: "terminated lines", content: "a\nb\nc\n", expected: 3},
		{name: "trailing partial line", content: "a\nb\nc", expected: 3},
		{name: "no newline", content: "abc", expected: 1},
		{name: "crlf", content: "a\r\nb\r\n", expected: 2},
		{name: "blank lines count", content: "\n\n\n", expected: 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Count([]byte(tc.content)))
		})
	}
}

func TestCountLines(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "main.rs")
	require.NoError(t, os.WriteFile(text, []byte("fn main() {\n    println!(\"héllo\");\n}\n"), 0o644))
	n, err := CountLines(text)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)

	binary := filepath.Join(dir, "blob.rs")
	require.NoError(t, os.WriteFile(binary, []byte{0xff, 0xfe, 0x00, '\n'}, 0o644))
	_, err = CountLines(binary)
	assert.ErrorIs(t, err, ErrNotText)

	_, err = CountLines(filepath.Join(dir, "missing.rs"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
