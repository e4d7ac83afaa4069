package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboard(t *testing.T) {
	b := newTestBoard(t, "world")
	b = typeWord(b, "lorem")
	b = typeWord(b, "would")

	kb := b.Keyboard()
	assert.Equal(t, []string{"d", "l", "o", "r", "w"}, kb.Hit)
	assert.Equal(t, []string{"l"}, kb.Present)
	assert.Equal(t, []string{"e", "m", "u"}, kb.Miss)

	assert.Equal(t, MarkHit, kb.Mark("L"))
	assert.Equal(t, MarkMiss, kb.Mark("u"))
	assert.Equal(t, MarkPending, kb.Mark("z"))
}

func TestKeyboardIgnoresUnsubmittedRows(t *testing.T) {
	b := newTestBoard(t, "world").PressAll(Letter('w'), Letter('o'))
	kb := b.Keyboard()
	assert.Empty(t, kb.Hit)
	assert.Empty(t, kb.Present)
	assert.Empty(t, kb.Miss)
}

func TestShare(t *testing.T) {
	b := newTestBoard(t, "world")
	assert.Equal(t, "Wordle result \n", b.Share())

	b = typeWord(b, "lorem")
	b = typeWord(b, "world")
	require.Equal(t, StatusWon, b.Status())
	assert.Equal(t, "Wordle result \n🟨🟩🟩⬛⬛\n🟩🟩🟩🟩🟩", b.Share())
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"a", Letter('a')},
		{"Q", Letter('q')},
		{"ENTER", Submit()},
		{"submit", Submit()},
		{"CLEAR", Delete()},
		{"Backspace", Delete()},
		{"delete", Delete()},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "ab", "1", "?"} {
		_, err := ParseKey(bad)
		assert.ErrorIs(t, err, ErrUnknownKey, bad)
	}
}

func TestParseKeysAllOrNothing(t *testing.T) {
	keys, err := ParseKeys([]string{"a", "ENTER"})
	require.NoError(t, err)
	assert.Equal(t, []Key{Letter('a'), Submit()}, keys)

	keys, err = ParseKeys([]string{"a", "!!"})
	assert.Error(t, err)
	assert.Nil(t, keys)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "ENTER", Submit().String())
	assert.Equal(t, "DELETE", Delete().String())
	assert.Equal(t, "x", Letter('X').String())
}
