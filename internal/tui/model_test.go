package tui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/game"
)

func newModel(t *testing.T, cfg game.BoardConfig, opts Options) Model {
	t.Helper()
	b, err := game.NewBoard("world", cfg)
	require.NoError(t, err)
	return New(b, opts)
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingAndDeleting(t *testing.T) {
	m := newModel(t, game.BoardConfig{}, Options{})
	m, _ = send(m, runes("wo"), runes("x"), tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "wo", m.Board().Row(0))
	_, col := m.Board().Cursor()
	assert.Equal(t, 2, col)
}

func TestSubmitMessages(t *testing.T) {
	m := newModel(t, game.BoardConfig{Allowed: func(w string) bool { return w != "zzzzz" }}, Options{})

	m, _ = send(m, runes("wo"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Not enough letters", m.message)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, runes("zzzzz"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Not in word list", m.message)
	assert.Equal(t, 0, m.Board().Attempts())
}

func TestWinAndQuit(t *testing.T) {
	m := newModel(t, game.BoardConfig{}, Options{})
	m, cmd := send(m, runes("world"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, game.StatusWon, m.Board().Status())
	assert.Equal(t, "Hooray! You won!", m.message)
	assert.Contains(t, m.View(), "Wordle result")

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
}

func TestLossMessage(t *testing.T) {
	m := newModel(t, game.BoardConfig{MaxAttempts: 1}, Options{})
	m, _ = send(m, runes("lorem"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, game.StatusLost, m.Board().Status())
	assert.Contains(t, m.message, "world")
}

func TestQuitSavesSnapshot(t *testing.T) {
	dir := t.TempDir()
	m := newModel(t, game.BoardConfig{}, Options{SaveDir: dir})
	m, cmd := send(m, runes("lorem"), tea.KeyMsg{Type: tea.KeyEnter}, runes("wo"), tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.NotEmpty(t, m.SavedPath())

	snap, err := game.ReadSnapshot(m.SavedPath())
	require.NoError(t, err)
	assert.Equal(t, []string{"lorem"}, snap.Guesses)
	assert.Equal(t, "wo", snap.Typing)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Contains(t, m.View(), "Saved")
}

func TestRenderBoardShowsLetters(t *testing.T) {
	b, err := game.NewBoard("world", game.BoardConfig{MaxAttempts: 2})
	require.NoError(t, err)
	b = b.PressAll(game.KeysFor("lorem")...)

	out := RenderBoard(b)
	for _, l := range "LOREM" {
		assert.True(t, strings.ContainsRune(out, l), string(l))
	}

	kb := RenderKeyboard(b.Keyboard())
	assert.Contains(t, kb, "ENTER")
	assert.Contains(t, kb, "DELETE")
}
