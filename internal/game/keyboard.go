package game

import (
	"sort"
	"strings"
)

// Keyboard holds the letters seen in submitted rows, grouped by mark.
// A letter can appear in more than one set; Mark resolves the tint.
type Keyboard struct {
	Hit     []string `json:"hit"`
	Present []string `json:"present"`
	Miss    []string `json:"miss"`
}

// Keyboard aggregates the marks of every submitted cell.
func (b Board) Keyboard() Keyboard {
	sets := map[Mark]map[string]struct{}{
		MarkHit:     {},
		MarkPresent: {},
		MarkMiss:    {},
	}
	for row := 0; row < b.attempts; row++ {
		for col, m := range b.RowMarks(row) {
			sets[m][string(b.cells[row][col])] = struct{}{}
		}
	}
	return Keyboard{
		Hit:     sortedKeys(sets[MarkHit]),
		Present: sortedKeys(sets[MarkPresent]),
		Miss:    sortedKeys(sets[MarkMiss]),
	}
}

// Mark returns the tint for one key: hit beats present beats miss.
func (k Keyboard) Mark(letter string) Mark {
	letter = strings.ToLower(letter)
	switch {
	case contains(k.Hit, letter):
		return MarkHit
	case contains(k.Present, letter):
		return MarkPresent
	case contains(k.Miss, letter):
		return MarkMiss
	}
	return MarkPending
}

var shareGlyphs = map[Mark]string{
	MarkHit:     "🟩",
	MarkPresent: "🟨",
	MarkMiss:    "⬛",
}

// Share renders the submitted rows as an emoji grid.
func (b Board) Share() string {
	lines := make([]string, 0, b.attempts)
	for row := 0; row < b.attempts; row++ {
		var sb strings.Builder
		for _, m := range b.RowMarks(row) {
			sb.WriteString(shareGlyphs[m])
		}
		lines = append(lines, sb.String())
	}
	return "Wordle result \n" + strings.Join(lines, "\n")
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	i := sort.SearchStrings(list, s)
	return i < len(list) && list[i] == s
}
