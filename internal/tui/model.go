// Package tui is the terminal client: a bubbletea program that feeds
// keystrokes into a game.Board and renders the grid and keyboard with
// lipgloss.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
)

// Options configure a terminal session.
type Options struct {
	Title   string // header line; "WORDLE" when empty
	SaveDir string // when set, a snapshot is written here on exit
}

// Model is the bubbletea model for one game.
type Model struct {
	board     game.Board
	opts      Options
	message   string
	savedPath string
	quitting  bool
}

// New returns a model for b.
func New(b game.Board, opts Options) Model {
	if opts.Title == "" {
		opts.Title = "WORDLE"
	}
	return Model{board: b, opts: opts}
}

// Board returns the current board.
func (m Model) Board() game.Board { return m.board }

// SavedPath is the snapshot written on exit, if any.
func (m Model) SavedPath() string { return m.savedPath }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch km.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.quit()
	case tea.KeyEnter:
		if m.board.Status().Finished() {
			return m.quit()
		}
		return m.press(game.Submit()), nil
	case tea.KeyBackspace, tea.KeyDelete:
		return m.press(game.Delete()), nil
	case tea.KeyRunes:
		for _, r := range km.Runes {
			m = m.press(game.Letter(r))
		}
		return m, nil
	}
	return m, nil
}

// press applies one key and refreshes the status line.
func (m Model) press(k game.Key) Model {
	before := m.board
	m.board = m.board.Press(k)
	m.message = ""

	if k.Kind == game.KeySubmit && m.board.Attempts() == before.Attempts() && !before.Status().Finished() {
		if _, col := before.Cursor(); col == before.WordLength() {
			m.message = "Not in word list"
		} else {
			m.message = "Not enough letters"
		}
	}
	switch {
	case m.board.Status() == game.StatusWon && !before.Status().Finished():
		m.message = "Hooray! You won!"
	case m.board.Status() == game.StatusLost && !before.Status().Finished():
		m.message = fmt.Sprintf("Meh... the word was %q", m.board.Target())
	}
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.opts.SaveDir != "" {
		path, err := game.SaveSnapshot(m.opts.SaveDir, game.SnapshotOf(m.board), time.Now())
		if err != nil {
			log.Error().Err(err).Str("dir", m.opts.SaveDir).Msg("save snapshot")
		} else {
			m.savedPath = path
			log.Info().Str("path", path).Msg("snapshot saved")
		}
	}
	return m, tea.Quit
}

// Run starts the program on the terminal and returns the final model.
func Run(m Model, opts ...tea.ProgramOption) (Model, error) {
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}
