package game

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

// Snapshot is a portable record of a game in progress or finished.
type Snapshot struct {
	ID          string   `yaml:"id,omitempty"`
	Daily       string   `yaml:"daily,omitempty"`
	Target      string   `yaml:"target"`
	Scoring     Scoring  `yaml:"scoring"`
	MaxAttempts int      `yaml:"max_attempts"`
	Guesses     []string `yaml:"guesses,flow"`
	Typing      string   `yaml:"typing,omitempty"`
}

// Snapshot captures the game's current board.
func (g *Game) Snapshot() *Snapshot {
	b := g.Board()
	snap := SnapshotOf(b)
	snap.ID = g.ID
	snap.Daily = g.Daily
	return snap
}

// SnapshotOf captures a board.
func SnapshotOf(b Board) *Snapshot {
	snap := &Snapshot{
		Target:      b.Target(),
		Scoring:     b.Scoring(),
		MaxAttempts: b.MaxAttempts(),
		Guesses:     b.Guesses(),
	}
	if !b.Status().Finished() {
		snap.Typing = b.Row(b.Attempts())
	}
	return snap
}

// Serialize encodes the snapshot as YAML.
func (s *Snapshot) Serialize() ([]byte, error) {
	return yaml.Marshal(s)
}

// Board rebuilds the board by replaying the recorded keystrokes.
// cfg.MaxAttempts and cfg.Scoring are taken from the snapshot.
func (s *Snapshot) Board(cfg BoardConfig) (Board, error) {
	scoring, ok := ParseScoring(string(s.Scoring))
	if !ok {
		return Board{}, fmt.Errorf("snapshot: unknown scoring %q", s.Scoring)
	}
	if s.MaxAttempts < 1 || s.MaxAttempts > MaxAttemptsLimit {
		return Board{}, fmt.Errorf("snapshot: max_attempts must be 1-%d, got %d", MaxAttemptsLimit, s.MaxAttempts)
	}
	allowed := cfg.Allowed
	cfg.Allowed = nil
	cfg.MaxAttempts = s.MaxAttempts
	cfg.Scoring = scoring
	b, err := NewBoard(s.Target, cfg)
	if err != nil {
		return Board{}, err
	}
	for i, guess := range s.Guesses {
		next := b.PressAll(KeysFor(guess)...)
		if len([]rune(guess)) != b.WordLength() || next.Attempts() != i+1 {
			return Board{}, fmt.Errorf("snapshot guess %d %q does not fit the board", i+1, guess)
		}
		b = next
	}
	for _, r := range s.Typing {
		b = b.Press(Letter(r))
	}
	b.allowed = allowed
	return b, nil
}

// Game rebuilds a hosted game from the snapshot.
func (s *Snapshot) Game(cfg BoardConfig) (*Game, error) {
	g, err := New(s.Target, cfg)
	if err != nil {
		return nil, err
	}
	b, err := s.Board(cfg)
	if err != nil {
		return nil, err
	}
	if s.ID != "" {
		g.ID = s.ID
	}
	g.Daily = s.Daily
	g.board = b
	if b.Status().Finished() {
		g.FinishedAt = g.CreatedAt
	}
	return g, nil
}

// LoadSnapshot decodes a YAML snapshot.
func LoadSnapshot(in []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := yaml.Unmarshal(in, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ReadSnapshot loads a snapshot file.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadSnapshot(data)
}

// SaveSnapshot writes the snapshot into dir, creating it if needed,
// and returns the file path.
func SaveSnapshot(dir string, s *Snapshot, now time.Time) (string, error) {
	stat, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	case !stat.IsDir():
		return "", fmt.Errorf("%s is not a directory", dir)
	}

	out, err := s.Serialize()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("wordgrid-%s-%d.yaml", now.UTC().Format("20060102-150405"), len(s.Guesses))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
