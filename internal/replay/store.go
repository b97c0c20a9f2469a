// Package replay persists recorded play-throughs to disk, keyed by level
// name, and replays them for the corpus-determinism property in spec.md §8.
// Grounded on the teacher's convention (internal/game/event.go's
// ToJSON()-method style) applied to chipcore.ReplayDto, using encoding/json
// rather than the teacher's own event-log-specific format.
package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"chipsim/internal/chipcore"
)

// Store persists ReplayDto files under a single directory, one JSON file
// per saved run, named "<level>-<unix-nano>.json".
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, creating it if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("replay: create store dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes dto to disk under levelName and returns the file path.
func (s *Store) Save(levelName string, dto chipcore.ReplayDto) (string, error) {
	name := fmt.Sprintf("%s-%d.json", sanitize(levelName), time.Now().UnixNano())
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return "", fmt.Errorf("replay: marshal %q: %w", levelName, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("replay: write %q: %w", path, err)
	}
	return path, nil
}

// Load reads a ReplayDto back from path.
func (s *Store) Load(path string) (chipcore.ReplayDto, error) {
	var dto chipcore.ReplayDto
	data, err := os.ReadFile(path)
	if err != nil {
		return dto, fmt.Errorf("replay: read %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &dto); err != nil {
		return dto, fmt.Errorf("replay: unmarshal %q: %w", path, err)
	}
	return dto, nil
}

// List returns every saved replay path for levelName, newest first.
func (s *Store) List(levelName string) ([]string, error) {
	pattern := filepath.Join(s.dir, sanitize(levelName)+"-*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("replay: list %q: %w", levelName, err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// Playback drives s to completion from a decoded replay's input stream and
// reports whether the session's final tick/steps/bonks counters match the
// recorded ReplayDto (ReplayDto stores no activity, so the final activity is
// not compared), the corpus-replay determinism property from spec.md
// §8. Grounded on original_source/chipcore/tests/replays.rs's test_replay.
func Playback(s *chipcore.GameState, dto chipcore.ReplayDto) (ok bool, err error) {
	if err := s.LoadReplaySeed(dto); err != nil {
		return false, err
	}
	inputs, err := chipcore.DecodeReplay(dto.Replay)
	if err != nil {
		return false, err
	}
	for _, in := range inputs {
		s.Tick(in)
	}
	return s.TickCount == dto.Ticks && s.Steps == dto.Steps && s.Bonks == dto.Bonks, nil
}
