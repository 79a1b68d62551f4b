package finalenglish

import (
	"context"
	"encoding/json"
	"os"
	"sync"
)

// PreferenceSchemaVersion is the schema version of the persisted mode
// preference. A stored record with a different version is discarded and
// defaults are used.
const PreferenceSchemaVersion = "2.0"

// Preference is the persisted mode record. Dir is stored purely as a
// cache of Mode.Direction(); readers must recompute rather than trust it.
type Preference struct {
	Version   string    `json:"version"`
	Mode      Mode      `json:"mode"`
	Dir       Direction `json:"dir"`
	Timestamp int64     `json:"timestamp"` // epoch milliseconds
}

// PreferenceStore persists the mode preference across sessions.
type PreferenceStore interface {
	// Load returns the stored preference. ok is false when nothing is
	// stored; an error is treated by callers as "no saved preference".
	Load(ctx context.Context) (pref Preference, ok bool, err error)

	// Save stores the preference, replacing any previous record.
	Save(ctx context.Context, pref Preference) error
}

// MemoryStore is an in-process PreferenceStore.
type MemoryStore struct {
	mu    sync.Mutex
	pref  Preference
	saved bool
}

// NewMemoryStore creates an empty in-memory preference store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (Preference, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pref, s.saved, nil
}

func (s *MemoryStore) Save(_ context.Context, pref Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pref = pref
	s.saved = true
	return nil
}

// FileStore persists the preference as a JSON file. It is the
// local-storage analog for CLI and desktop hosts.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a preference store backed by the given file path.
// The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (Preference, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preference{}, false, nil
		}
		return Preference{}, false, &StorageError{Op: "load", Cause: err}
	}

	var pref Preference
	if err := json.Unmarshal(data, &pref); err != nil {
		// Corrupt file reads as "no saved preference".
		return Preference{}, false, &StorageError{Op: "load", Cause: err}
	}
	return pref, true, nil
}

func (s *FileStore) Save(_ context.Context, pref Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(pref, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", Cause: err}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return &StorageError{Op: "save", Cause: err}
	}
	return nil
}

// Verify store implementations satisfy PreferenceStore
var (
	_ PreferenceStore = (*MemoryStore)(nil)
	_ PreferenceStore = (*FileStore)(nil)
)
