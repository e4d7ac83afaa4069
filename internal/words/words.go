// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the
//     lists embedded in the assets package.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply utility functions like RandomAnswer, IsAllowed, IsAnswer, and Stats.
//
// Initialization behavior (Init):
//   1. If both paths are set, load answers from the first and allowed
//      guesses from the second.
//   2. If only the allowed path is set, use that file for both lists.
//   3. If only the answers path is set, pair it with the embedded guesses.
//   4. Otherwise use the embedded lists.
//
// Constraints:
//   • Words are MinLength..MaxLength letters a–z; anything else is skipped.
//   • Lists are normalized to lowercase.
//   • Initialization runs once (sync.Once); lookups before Init see the
//     embedded lists.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordgrid/assets"
)

// Word length bounds accepted from any list.
const (
	MinLength = 2
	MaxLength = 12
)

// fallbackAnswer is used when no list could be loaded at all.
const fallbackAnswer = "crane"

var (
	initOnce   sync.Once
	answers    []string            // canonical answers
	allowedSet map[string]struct{} // answers ∪ guesses
	answersSet map[string]struct{} // answers only
	initialErr error
)

// Init loads word lists exactly once.
// Returns an error if a file cannot be read or the answers list ends up empty.
func Init(answersPath, allowedPath string) error {
	initOnce.Do(func() {
		initialErr = load(answersPath, allowedPath)
	})
	return initialErr
}

func ensure() {
	_ = Init("", "")
}

func load(answersPath, allowedPath string) error {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return err
		}

	case answersPath == "" && allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return err
		}
		ansList = allowList

	case answersPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return err
		}
		if allowList, err = readEmbedded(assets.AllowedFile); err != nil {
			return err
		}

	default:
		if ansList, err = readEmbedded(assets.AnswersFile); err != nil {
			return err
		}
		if allowList, err = readEmbedded(assets.AllowedFile); err != nil {
			return err
		}
	}

	answers = ansList
	answersSet = toSet(ansList)

	// Ensure all answers are also marked as allowed
	allowedSet = toSet(ansList)
	for _, w := range allowList {
		allowedSet[w] = struct{}{}
	}

	if len(answers) == 0 {
		return errors.New("words: answers list is empty")
	}
	return nil
}

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWords(f)
}

func readEmbedded(name string) ([]string, error) {
	f, err := assets.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWords(f)
}

// readWords reads one word per line, skipping blanks, # comments and
// anything that is not a valid word.
func readWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if strings.HasPrefix(w, "#") {
			continue
		}
		if Valid(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// Valid reports whether w is a lowercase a–z word of acceptable length.
func Valid(w string) bool {
	if len(w) < MinLength || len(w) > MaxLength {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// RandomAnswer returns a cryptographically random answer from the answers list.
// If no answers are loaded, falls back to "crane".
func RandomAnswer() string {
	ensure()
	if len(answers) == 0 {
		return fallbackAnswer
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	if err != nil {
		return answers[0]
	}
	return answers[nBig.Int64()]
}

// Answers returns the canonical answer list (all lowercase).
func Answers() []string {
	ensure()
	return answers
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func IsAllowed(w string) bool {
	ensure()
	_, ok := allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func IsAnswer(w string) bool {
	ensure()
	_, ok := answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func Stats() (answersCount int, allowedCount int) {
	ensure()
	return len(answers), len(allowedSet)
}
