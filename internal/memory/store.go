// Package memory persists processed items to a flat JSON file so the
// pipeline can skip re-processing and serve simple summary searches. The
// file stays human-readable on purpose: inspecting memory.json is part of
// the demo workflow.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

const recordsCacheKey = "records"

// Store is a JSON-array-backed record store with last-write-wins upserts.
// A small in-process cache keeps the decoded records hot between calls;
// every write goes straight to disk.
type Store struct {
	path string
	mu   sync.Mutex
	hot  *gocache.Cache
}

// NewStore opens (or initializes) the store at path.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("initialize store file: %w", err)
		}
	}

	return &Store{
		path: path,
		hot:  gocache.New(30*time.Second, time.Minute),
	}, nil
}

// Store inserts or replaces the record under key. An existing record with
// the same key is overwritten in place; insertion order is otherwise kept.
func (s *Store) Store(key string, data model.StoredData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	record := model.Record{
		Key:       key,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	updated := false
	for i, old := range records {
		if old.Key == key {
			records[i] = record
			updated = true
			break
		}
	}
	if !updated {
		records = append(records, record)
	}

	return s.save(records)
}

// Get returns the record stored under key, if any.
func (s *Store) Get(key string) (model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.load() {
		if rec.Key == key {
			return rec, true
		}
	}
	return model.Record{}, false
}

// All returns every stored record in insertion order.
func (s *Store) All() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// QuerySimilar returns records whose summary contains text, matched
// case-insensitively. Plain substring search keeps this fully offline.
func (s *Store) QuerySimilar(text string) []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(text)
	var results []model.Record
	for _, rec := range s.load() {
		if strings.Contains(strings.ToLower(rec.Data.Summary), needle) {
			results = append(results, rec)
		}
	}
	return results
}

// Compact strips stored raw text, keeping the file tidy for long
// sessions. Summaries, analyses and evaluations are untouched.
func (s *Store) Compact() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	changed := false
	for i := range records {
		if records[i].Data.Raw != "" {
			records[i].Data.Raw = ""
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return s.save(records)
}

// load reads the record list, falling back to empty on a missing or
// corrupt file rather than failing the caller.
func (s *Store) load() []model.Record {
	if cached, found := s.hot.Get(recordsCacheKey); found {
		return cached.([]model.Record)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var records []model.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: memory store unreadable, starting empty: %v\n", err)
		return nil
	}

	s.hot.Set(recordsCacheKey, records, 0)
	return records
}

func (s *Store) save(records []model.Record) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	s.hot.Set(recordsCacheKey, records, 0)
	return nil
}
