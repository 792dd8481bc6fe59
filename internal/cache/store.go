package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
)

// Store is the persistent candidate cache: a single JSON object on disk
// mapping "<query>|<limit>" keys to candidate lists. The file is loaded
// wholesale at startup and rewritten wholesale on every flush. Entries are
// never mutated in place, only overwritten, and there is no TTL or
// eviction; the store assumes a single writer process.
//
// All disk I/O degrades gracefully: a missing or corrupt file loads as an
// empty cache, and a failed flush leaves the in-memory mapping
// authoritative for the rest of the process.
type Store struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	loaded  bool
	entries map[string][]domain.Candidate
}

// New creates a Store backed by the JSON file at path. Call Load before use.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:    path,
		logger:  logger,
		entries: make(map[string][]domain.Candidate),
	}
}

// Key builds the cache key for a query and candidate limit. The query is
// trimmed so that re-typed whitespace does not fork cache entries.
func Key(query string, limit int) string {
	return strings.TrimSpace(query) + "|" + strconv.Itoa(limit)
}

// Load reads the backing file into memory. A missing file starts an empty
// cache silently; any other read or decode failure starts empty with a
// warning. Load never fails.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("cache file unreadable, starting empty", "path", s.path, "error", err)
		}
		return
	}

	entries := make(map[string][]domain.Candidate)
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("cache file corrupt, starting empty", "path", s.path, "error", err)
		return
	}
	s.entries = entries
}

// Get returns the cached candidate list for key. The returned slice is a
// copy; cached entries are immutable.
func (s *Store) Get(key string) ([]domain.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cands, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	out := make([]domain.Candidate, len(cands))
	copy(out, cands)
	return out, true
}

// Put stores a candidate list under key, replacing any previous entry
// wholesale. Empty lists are not cached, so a transient "no results"
// outcome can be retried on the next resolution.
func (s *Store) Put(key string, cands []domain.Candidate) {
	if len(cands) == 0 {
		return
	}

	stored := make([]domain.Candidate, len(cands))
	copy(stored, cands)

	s.mu.Lock()
	s.entries[key] = stored
	s.mu.Unlock()
}

// Flush rewrites the entire backing file. Write failures are logged and
// swallowed; the in-memory mapping stays authoritative either way.
func (s *Store) Flush() {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("cache encode failed", "error", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Warn("cache flush failed", "path", s.path, "error", err)
	}
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CheckReadiness reports whether the store has been loaded, satisfying the
// HTTP adapter's readiness probe.
func (s *Store) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return errors.New("candidate cache has not been loaded yet")
	}
	return nil
}
