package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordgrid/internal/game"
)

var (
	colorBlack     = lipgloss.Color("#121214")
	colorDarkGrey  = lipgloss.Color("#3A3A3D")
	colorGrey      = lipgloss.Color("#818384")
	colorLightGrey = lipgloss.Color("#D7DADC")
	colorPrimary   = lipgloss.Color("#538D4E")
	colorSecondary = lipgloss.Color("#B59F3B")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLightGrey).Padding(0, 0, 1, 0)
	cellStyle  = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLightGrey).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDarkGrey).
			Width(3).
			Align(lipgloss.Center)
	keyStyle  = lipgloss.NewStyle().Foreground(colorLightGrey).Background(colorGrey).Padding(0, 1).MarginRight(1)
	hintStyle = lipgloss.NewStyle().Foreground(colorGrey).Padding(1, 0, 0, 0)
)

// keyboardRows is the on-screen keyboard layout.
var keyboardRows = [][]string{
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l"},
	{game.SymbolEnter, "z", "x", "c", "v", "b", "n", "m", game.SymbolDelete},
}

func markColor(m game.Mark) lipgloss.Color {
	switch m {
	case game.MarkHit:
		return colorPrimary
	case game.MarkPresent:
		return colorSecondary
	case game.MarkMiss:
		return colorDarkGrey
	}
	return colorBlack
}

func (m Model) View() string {
	if m.quitting {
		if m.savedPath != "" {
			return "Saved " + m.savedPath + "\n"
		}
		return ""
	}
	parts := []string{
		titleStyle.Render(m.opts.Title),
		RenderBoard(m.board),
		RenderKeyboard(m.board.Keyboard()),
	}
	if m.message != "" {
		parts = append(parts, hintStyle.Render(m.message))
	}
	if m.board.Status().Finished() {
		parts = append(parts, hintStyle.Render(m.board.Share()), hintStyle.Render("enter/esc to quit"))
	} else {
		parts = append(parts, hintStyle.Render("type letters · enter submits · backspace deletes · esc quits"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...) + "\n"
}

// RenderBoard draws the grid; the active cell gets a light border.
func RenderBoard(b game.Board) string {
	curRow, curCol := b.Cursor()
	playing := !b.Status().Finished()

	rows := make([]string, 0, b.MaxAttempts())
	for r := 0; r < b.MaxAttempts(); r++ {
		cells := make([]string, 0, b.WordLength())
		for c := 0; c < b.WordLength(); c++ {
			letter := " "
			if l := b.Cell(r, c); l != 0 {
				letter = strings.ToUpper(string(l))
			}
			st := cellStyle.Background(markColor(b.Mark(r, c)))
			if playing && r == curRow && c == curCol {
				st = st.BorderForeground(colorLightGrey)
			}
			cells = append(cells, st.Render(letter))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderKeyboard draws the keyboard tinted by the aggregated letter marks.
func RenderKeyboard(kb game.Keyboard) string {
	lines := make([]string, 0, len(keyboardRows))
	for _, row := range keyboardRows {
		keys := make([]string, 0, len(row))
		for _, k := range row {
			st := keyStyle
			if len(k) == 1 {
				if m := kb.Mark(k); m != game.MarkPending {
					st = st.Background(markColor(m))
				}
			}
			keys = append(keys, st.Render(strings.ToUpper(k)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
