package statebag

import (
	"errors"

	"rig-retarget/internal/common"
	"rig-retarget/internal/ikfk"
)

var (
	ErrNotFound    = errors.New("no session stored for scene")
	ErrEmptyScene  = errors.New("scene name is empty")
	ErrStoreClosed = errors.New("store is closed")
)

// Record is the persisted session of one scene.
type Record struct {
	Scene        string
	Source       string
	SourceAction string
	Target       string
	TargetAction string
	Enabled      bool
	// Mode is the IK/FK selector shown to the user.
	Mode ikfk.Mode
	IKFK ikfk.State
}

// NewRecord returns the record of a scene nobody configured yet.
func NewRecord(scene string) Record {
	return Record{Scene: scene, Mode: ikfk.Mixed, IKFK: ikfk.NewState()}
}

// Store loads and saves records.
type Store interface {
	// Load returns the record of scene, or ErrNotFound.
	Load(scene string) (Record, error)
	// Save inserts or replaces rec.
	Save(rec Record) error
	// Delete drops the record of scene. Deleting a missing record is not an
	// error.
	Delete(scene string) error
	// Scenes lists the scenes with a stored record, sorted.
	Scenes() ([]string, error)
	Close() error
}

// LoadOrNew returns the stored record of scene, or a fresh one.
func LoadOrNew(s Store, scene string) (Record, error) {
	rec, err := s.Load(scene)
	if errors.Is(err, ErrNotFound) {
		return NewRecord(scene), nil
	}

	return rec, err
}

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	records map[string]Record
	closed  bool
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]Record{}}
}

// Load implements Store.
func (m *MemoryStore) Load(scene string) (Record, error) {
	if m.closed {
		return Record{}, ErrStoreClosed
	}

	rec, ok := m.records[scene]
	if !ok {
		return Record{}, ErrNotFound
	}

	return rec, nil
}

// Save implements Store.
func (m *MemoryStore) Save(rec Record) error {
	if m.closed {
		return ErrStoreClosed
	}

	if rec.Scene == "" {
		return ErrEmptyScene
	}

	m.records[rec.Scene] = rec

	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(scene string) error {
	if m.closed {
		return ErrStoreClosed
	}

	delete(m.records, scene)

	return nil
}

// Scenes implements Store.
func (m *MemoryStore) Scenes() ([]string, error) {
	if m.closed {
		return nil, ErrStoreClosed
	}

	return common.SortedKeys(m.records), nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.closed = true
	return nil
}
