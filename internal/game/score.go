// internal/game/score.go
//
// Letter scoring for submitted rows.
//
// Two rules are supported:
//   - classic: each cell is judged on its own (ScoreCell).
//   - strict:  the two-pass algorithm, which spends target letters so
//     repeated guess letters are not over-reported.

package game

// ScoreCell classifies one submitted letter at column col against target.
// An exact match takes priority over a present-elsewhere match.
func ScoreCell(letter rune, col int, target []rune) Mark {
	if col >= 0 && col < len(target) && target[col] == letter {
		return MarkHit
	}
	for _, r := range target {
		if r == letter {
			return MarkPresent
		}
	}
	return MarkMiss
}

// ScoreRow scores a full submitted row with the given rule.
func ScoreRow(row, target []rune, scoring Scoring) []Mark {
	if scoring == ScoringStrict {
		return scoreStrict(row, target)
	}
	marks := make([]Mark, len(row))
	for i, r := range row {
		marks[i] = ScoreCell(r, i, target)
	}
	return marks
}

// scoreStrict implements the two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches as hits.
//   - Count the remaining (non-hit) target letters.
//
// Pass 2:
//   - For each non-hit letter: if a count remains, mark present and
//     decrement; otherwise mark miss.
func scoreStrict(row, target []rune) []Mark {
	n := len(row)
	res := make([]Mark, n)
	counts := make(map[rune]int, len(target))

	for i := 0; i < n; i++ {
		if i < len(target) && row[i] == target[i] {
			res[i] = MarkHit
		} else if i < len(target) {
			counts[target[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		if counts[row[i]] > 0 {
			res[i] = MarkPresent
			counts[row[i]]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}
