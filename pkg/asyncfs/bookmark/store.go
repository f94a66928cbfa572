package bookmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// configFile holds the on-disk shape of the bookmark config.
type configFile struct {
	Entries []Entry `json:"entries"`
}

// Store persists entries to a JSON config file. A Store loads at most
// once; the loaded flag is owned here rather than by any global state.
type Store struct {
	path    string
	entries []Entry
	loaded  bool
	logger  zerolog.Logger
}

// NewStore creates a store backed by the given config file path.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// DefaultPath returns the conventional config file location under the
// user's config directory, falling back to the working directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "asyncfs_bookmarks.json")
}

// Load reads the config file. A missing file yields an empty store.
// The legacy format, a bare array of entries, is accepted alongside the
// current object form. Load is a no-op after the first call.
func (s *Store) Load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read bookmark config %s: %w", s.path, err)
	}

	var cfg configFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Legacy format: the file is a bare entries array.
		var legacy []Entry
		if legacyErr := json.Unmarshal(data, &legacy); legacyErr != nil {
			return fmt.Errorf("failed to parse bookmark config %s: %w", s.path, err)
		}
		s.logger.Info().Str("path", s.path).Msg("migrating legacy bookmark config format")
		cfg.Entries = legacy
	}

	s.entries = make([]Entry, 0, len(cfg.Entries))
	for _, e := range cfg.Entries {
		s.entries = append(s.entries, e.migrate())
	}
	s.loaded = true

	s.logger.Debug().
		Str("path", s.path).
		Int("entry_count", len(s.entries)).
		Msg("bookmark config loaded")
	return nil
}

// Save writes the current entries back to the config file.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(configFile{Entries: s.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize bookmark config: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bookmark config %s: %w", s.path, err)
	}
	return nil
}

// Entries returns the loaded entries in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get looks up an entry by ID.
func (s *Store) Get(id string) (Entry, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Add appends an entry.
func (s *Store) Add(e Entry) {
	s.entries = append(s.entries, e)
}

// Update replaces the entry with the same ID. It reports whether an
// entry was found.
func (s *Store) Update(e Entry) bool {
	for i, existing := range s.entries {
		if existing.ID == e.ID {
			s.entries[i] = e
			return true
		}
	}
	return false
}

// Remove drops the entry with the given ID and scrubs it from any
// collection's child list. It reports whether an entry was removed.
func (s *Store) Remove(id string) bool {
	found := false
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID == id {
			found = true
			continue
		}
		e.RemoveChild(id)
		kept = append(kept, e)
	}
	s.entries = kept
	return found
}

// FindByTag returns entries carrying the given tag, in insertion order.
func (s *Store) FindByTag(tag string) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// Path returns the config file path the store reads and writes.
func (s *Store) Path() string {
	return s.path
}
