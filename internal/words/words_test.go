package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"world", true},
		{"ab", true},
		{"a", false},
		{"abcdefghijklm", false},
		{"World", false},
		{"wo-ld", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.word), tt.word)
	}
}

func TestReadWordsSkipsCommentsAndJunk(t *testing.T) {
	in := "# header\nWorld\n\n  lorem \nx\nno-pe\n"
	got, err := readWords(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"world", "lorem"}, got)
}

func TestEmbeddedLists(t *testing.T) {
	require.NoError(t, Init("", ""))
	assert.True(t, IsAnswer("world"))
	assert.True(t, IsAllowed("WORLD"))
	assert.True(t, IsAllowed("lorem"))
	assert.False(t, IsAllowed("zzzzz"))

	a, g := Stats()
	assert.Positive(t, a)
	assert.GreaterOrEqual(t, g, a)
	assert.True(t, IsAnswer(RandomAnswer()))
}

func TestLoadFromFiles(t *testing.T) {
	t.Cleanup(func() { _ = load("", "") })
	dir := t.TempDir()
	answersPath := filepath.Join(dir, "answers.txt")
	allowedPath := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answersPath, []byte("apple\nberry\n"), 0o644))
	require.NoError(t, os.WriteFile(allowedPath, []byte("# guesses\nzesty\n"), 0o644))

	require.NoError(t, load(answersPath, allowedPath))
	assert.Equal(t, []string{"apple", "berry"}, Answers())
	assert.True(t, IsAllowed("zesty"))
	assert.True(t, IsAllowed("apple"))
	assert.False(t, IsAnswer("zesty"))

	require.NoError(t, load("", allowedPath))
	assert.Equal(t, []string{"zesty"}, Answers())

	require.NoError(t, load(answersPath, ""))
	assert.Equal(t, []string{"apple", "berry"}, Answers())
	assert.True(t, IsAllowed("lorem"))
}

func TestLoadErrors(t *testing.T) {
	t.Cleanup(func() { _ = load("", "") })
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0o644))

	assert.Error(t, load(empty, empty))
	assert.Error(t, load(filepath.Join(dir, "missing.txt"), empty))
}
