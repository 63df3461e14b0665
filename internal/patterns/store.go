// Package patterns persists which learned patterns were consulted during a
// session, keyed by session ID.
package patterns

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store maps session IDs to ordered lists of pattern identifiers, one JSON
// array file per session under Dir.
//
// The load-check-save sequence in Append is not atomic across processes;
// concurrent appenders for the same session can lose an ID. A single writer
// process per workspace is assumed.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir, creating it if absent.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &PersistenceError{Op: "create", Path: dir, Err: err}
	}
	return &Store{Dir: dir}, nil
}

// path returns the state file for a session, e.g. "patterns-used-<id>.json".
func (s *Store) path(sessionID string) string {
	return filepath.Join(s.Dir, "patterns-used-"+sessionID+".json")
}

// Load returns the persisted pattern IDs for a session. A missing or
// unparseable state file yields an empty list, never an error — attribution
// is advisory and a corrupt file must not block summary building.
func (s *Store) Load(sessionID string) []string {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil
	}
	return ids
}

// Save overwrites the full list for a session. The write goes through a temp
// file in the same directory so os.Rename replaces the old state atomically.
// Unlike reads, write failures are surfaced: silently losing attribution
// data would itself be a data-loss bug.
func (s *Store) Save(sessionID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return &PersistenceError{Op: "marshal", Path: s.path(sessionID), Err: err}
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return &PersistenceError{Op: "create", Path: s.Dir, Err: err}
	}

	tmp, err := os.CreateTemp(s.Dir, "patterns-*.json.tmp")
	if err != nil {
		return &PersistenceError{Op: "write", Path: s.path(sessionID), Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return &PersistenceError{Op: "write", Path: s.path(sessionID), Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &PersistenceError{Op: "write", Path: s.path(sessionID), Err: err}
	}
	if err = os.Rename(tmpName, s.path(sessionID)); err != nil {
		return &PersistenceError{Op: "replace", Path: s.path(sessionID), Err: err}
	}
	return nil
}

// Append adds id to the session's list unless it is already present.
// Appending an ID twice is a no-op, so re-consulting the same pattern in one
// session records it once.
func (s *Store) Append(sessionID, id string) error {
	ids := s.Load(sessionID)
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return s.Save(sessionID, append(ids, id))
}

// PersistenceError is returned when attribution state cannot be written.
type PersistenceError struct {
	Op   string // "create", "marshal", "write", "replace"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("pattern attribution %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
