// Package reports persists generated AI analysis reports in a lightweight
// key-value file, separate from the relational store. One report per
// calendar month, keyed ai_report_{month}_{year}, overwritten on
// regeneration.
package reports

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// maxMonths bounds growth: only the most recently generated months are
// retained, pruned oldest-first on write.
const maxMonths = 24

type entry struct {
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
	// Seq orders writes within the same clock instant so pruning stays
	// deterministic.
	Seq uint64 `json:"seq"`
}

// Store is a file-backed report store. The whole document is loaded at open
// and rewritten on every save; at one entry per analyzed month this never
// grows beyond a few kilobytes.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]entry
	nextSeq uint64
}

// Open loads the report file at path, creating parent directories as
// needed. A missing file is an empty store, not an error.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create reports directory: %w", err)
		}
	}

	s := &Store{path: path, entries: make(map[string]entry)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reports file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			return nil, fmt.Errorf("decode reports file: %w", err)
		}
	}
	for _, e := range s.entries {
		if e.Seq >= s.nextSeq {
			s.nextSeq = e.Seq + 1
		}
	}
	return s, nil
}

// Key derives the storage key for a month.
func Key(month, year int) string {
	return fmt.Sprintf("ai_report_%d_%d", month, year)
}

// Get returns the cached report for a month, if any.
func (s *Store) Get(month, year int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[Key(month, year)]
	return e.Text, ok
}

// Put stores a report for a month, overwriting any previous one, and prunes
// the oldest entries beyond the retention bound. Callers must only Put after
// a successful generation so a failed regeneration never clobbers an
// existing report.
func (s *Store) Put(month, year int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[Key(month, year)] = entry{Text: text, GeneratedAt: time.Now().UTC(), Seq: s.nextSeq}
	s.nextSeq++
	s.prune()

	if err := s.flush(); err != nil {
		return err
	}

	slog.Info("Report stored", "month", month, "year", year, "length", len(text))
	return nil
}

// Len returns the number of stored reports.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) prune() {
	if len(s.entries) <= maxMonths {
		return
	}
	type keyed struct {
		key string
		seq uint64
	}
	all := make([]keyed, 0, len(s.entries))
	for k, e := range s.entries {
		all = append(all, keyed{key: k, seq: e.Seq})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })
	for _, k := range all[:len(all)-maxMonths] {
		delete(s.entries, k.key)
	}
}

func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write reports file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace reports file: %w", err)
	}
	return nil
}
