// Package comments persists rider comments about lines and stations in
// a JSON file, keyed by line with a per-line cap on retained entries.
package comments

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Timestamp layouts found in existing comment files. New entries are
// written with the fractional layout; older files may carry either.
const (
	timestampLayout       = "2006-01-02 15:04:05.999999"
	timestampLayoutNoFrac = "2006-01-02 15:04:05"
)

// Comment is one rider note about a line at a station.
type Comment struct {
	Line      string    `json:"service"`
	Text      string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
	Station   string    `json:"station"`
}

type commentJSON struct {
	Line      string `json:"service"`
	Text      string `json:"comment"`
	Timestamp string `json:"timestamp"`
	Station   string `json:"station"`
}

// Store is a file-backed comment collection, safe for concurrent use.
// The whole file is rewritten on every add; comment volume is tiny and
// a capped rewrite keeps the on-disk format trivially inspectable.
type Store struct {
	path     string
	capacity int
	logger   *zap.Logger

	mu     sync.Mutex
	byLine map[string][]Comment
}

// NewStore opens the comment file at path, creating state for a missing
// file lazily on first add. capacity bounds how many comments per line
// are retained, oldest dropped first.
func NewStore(path string, capacity int, logger *zap.Logger) (*Store, error) {
	s := &Store{
		path:     path,
		capacity: capacity,
		logger:   logger,
		byLine:   map[string][]Comment{},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("no comment file yet", zap.String("path", s.path))
		return nil
	}
	if err != nil {
		return err
	}

	var onDisk map[string][]commentJSON
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}

	for line, entries := range onDisk {
		for _, e := range entries {
			ts, err := parseTimestamp(e.Timestamp)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", s.path, err)
			}
			s.byLine[line] = append(s.byLine[line], Comment{
				Line:      e.Line,
				Text:      e.Text,
				Timestamp: ts,
				Station:   e.Station,
			})
		}
	}
	return nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(timestampLayout, raw); err == nil {
		return ts, nil
	}
	return time.Parse(timestampLayoutNoFrac, raw)
}

// Add records a comment and persists the store. When a line exceeds the
// capacity, only the newest entries survive.
func (s *Store) Add(line, station, text string) (Comment, error) {
	c := Comment{
		Line:      line,
		Text:      text,
		Timestamp: time.Now(),
		Station:   station,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.byLine[line], c)
	if len(entries) > s.capacity {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		})
		entries = entries[:s.capacity]
	}
	s.byLine[line] = entries

	if err := s.save(); err != nil {
		return Comment{}, err
	}
	return c, nil
}

// ForStation returns the comments for a line at a station, newest first.
func (s *Store) ForStation(line, station string) []Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Comment
	for _, c := range s.byLine[line] {
		if c.Station == station {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Lines returns the lines that have at least one comment.
func (s *Store) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, len(s.byLine))
	for line := range s.byLine {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}

func (s *Store) save() error {
	onDisk := make(map[string][]commentJSON, len(s.byLine))
	for line, entries := range s.byLine {
		for _, c := range entries {
			onDisk[line] = append(onDisk[line], commentJSON{
				Line:      c.Line,
				Text:      c.Text,
				Timestamp: c.Timestamp.Format(timestampLayout),
				Station:   c.Station,
			})
		}
	}

	raw, err := json.MarshalIndent(onDisk, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
