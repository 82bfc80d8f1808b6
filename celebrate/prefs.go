package celebrate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// prefFileName is the fixed, application-namespaced preference record
const prefFileName = "celebrate.json"

// prefRecord is the persisted wire format
type prefRecord struct {
	Enabled bool `json:"enabled"`
}

// Backend is the persistence layer behind the preference store
type Backend interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// FileBackend stores the preference record at a fixed path
type FileBackend struct {
	Path string
}

// DefaultBackend places the record under the user config dir,
// falling back to the working directory when that is unavailable
func DefaultBackend() *FileBackend {
	dir, err := os.UserConfigDir()
	if err != nil {
		return &FileBackend{Path: prefFileName}
	}
	return &FileBackend{Path: filepath.Join(dir, "promptbench", prefFileName)}
}

// Read implements Backend
func (b *FileBackend) Read() ([]byte, error) {
	return os.ReadFile(b.Path)
}

// Write implements Backend
func (b *FileBackend) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(b.Path, data, 0o644)
}

// PreferenceStore persists the single "effects enabled" flag.
// The in-memory value is authoritative for the session; the backend is
// best-effort and any backend failure degrades to memory-only state.
type PreferenceStore struct {
	mu      sync.Mutex
	enabled bool
	backend Backend
	log     *zap.Logger
}

// NewPreferenceStore creates a store over the given backend
func NewPreferenceStore(backend Backend, log *zap.Logger) *PreferenceStore {
	return &PreferenceStore{
		backend: backend,
		log:     log,
	}
}

// Load reads the stored record into memory and returns the enabled flag.
// A missing, unreadable, or corrupt record falls back to the in-memory
// value, which starts disabled. Never errors.
func (s *PreferenceStore) Load() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Read()
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("celebration preference unreadable, keeping in-memory value", zap.Error(err))
		}
		return s.enabled
	}

	var rec prefRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Warn("celebration preference corrupt, keeping in-memory value", zap.Error(err))
		return s.enabled
	}

	s.enabled = rec.Enabled
	return s.enabled
}

// Save updates the in-memory flag unconditionally, then best-effort
// persists it. A write failure is warned and otherwise ignored.
func (s *PreferenceStore) Save(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()

	data, err := json.Marshal(prefRecord{Enabled: enabled})
	if err != nil {
		s.log.Warn("celebration preference encode failed", zap.Error(err))
		return
	}
	if err := s.backend.Write(data); err != nil {
		s.log.Warn("celebration preference not persisted, keeping in-memory value", zap.Error(err))
	}
}

// Enabled returns the current in-memory flag
func (s *PreferenceStore) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}
