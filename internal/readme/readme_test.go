package readme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-loc/internal/domain"
)

func TestReplace(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		expected    string
		expectError bool
	}{
		{
			name:     "replaces stale section",
			content:  "# Me\n" + StartMarker + "\nold\nstuff\n" + EndMarker + "\nfooter\n",
			expected: "# Me\n" + StartMarker + "\nNEW\n" + EndMarker + "\nfooter\n",
		},
		{
			name:     "adjacent markers",
			content:  StartMarker + EndMarker,
			expected: StartMarker + "\nNEW\n" + EndMarker,
		},
		{
			name:        "missing end marker",
			content:     "# Me\n" + StartMarker + "\n",
			expectError: true,
		},
		{
			name:        "end before start",
			content:     EndMarker + "\n" + StartMarker,
			expectError: true,
		},
		{
			name:        "no markers",
			content:     "# Me\n",
			expectError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Replace(tc.content, "NEW")
			if tc.expectError {
				assert.ErrorIs(t, err, ErrMarkersNotFound)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, out)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("intro\n"+StartMarker+"\n"+EndMarker+"\n"), 0o644))

	require.NoError(t, Update(path, "stats"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "intro\n"+StartMarker+"\nstats\n"+EndMarker+"\n", string(data))

	assert.Error(t, Update(filepath.Join(t.TempDir(), "missing.md"), "stats"))
}

func TestLoadResultsAndCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loc_results.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"octocat","processed_repos":2,"languages":{"go":10,"rust":5}}`), 0o644))

	results, err := LoadResults(path)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageCounts{"go": 10, "rust": 5}, results.Languages)

	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	cache := NewCache(results, now)
	assert.Equal(t, Cache{
		LastUpdate:     now,
		Languages:      domain.LanguageCounts{"go": 10, "rust": 5},
		TotalLines:     15,
		ReposProcessed: 2,
	}, cache)

	_, err = LoadResults(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
