package celebrate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// memBackend is an in-memory preference backend for tests
type memBackend struct {
	data []byte
}

func (b *memBackend) Read() ([]byte, error) {
	if b.data == nil {
		return nil, os.ErrNotExist
	}
	return b.data, nil
}

func (b *memBackend) Write(data []byte) error {
	b.data = data
	return nil
}

// failBackend fails every call, simulating an unavailable storage layer
type failBackend struct{}

func (failBackend) Read() ([]byte, error) {
	return nil, errors.New("storage unavailable")
}

func (failBackend) Write([]byte) error {
	return errors.New("storage unavailable")
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core), logs
}

// TestLoadDefaultsToDisabled verifies the first-ever load with no stored
// record reports disabled
func TestLoadDefaultsToDisabled(t *testing.T) {
	store := NewPreferenceStore(&memBackend{}, zap.NewNop())

	assert.False(t, store.Load())
	assert.False(t, store.Enabled())
}

// TestLoadCorruptRecord verifies a corrupt record warns and stays disabled
func TestLoadCorruptRecord(t *testing.T) {
	log, logs := observedLogger()
	store := NewPreferenceStore(&memBackend{data: []byte("{not json")}, log)

	assert.False(t, store.Load())
	assert.Equal(t, 1, logs.Len(), "corrupt record should log exactly one warning")
}

// TestSaveLoadRoundTrip verifies persistence survives a simulated reload
func TestSaveLoadRoundTrip(t *testing.T) {
	backend := &FileBackend{Path: filepath.Join(t.TempDir(), "celebrate.json")}

	store := NewPreferenceStore(backend, zap.NewNop())
	store.Save(true)

	// Fresh store over the same backend simulates an application restart
	reloaded := NewPreferenceStore(backend, zap.NewNop())
	assert.True(t, reloaded.Load())
}

// TestSaveRoundTripDisable verifies the flag persists in both directions
func TestSaveRoundTripDisable(t *testing.T) {
	backend := &memBackend{}
	store := NewPreferenceStore(backend, zap.NewNop())

	store.Save(true)
	require.True(t, NewPreferenceStore(backend, zap.NewNop()).Load())

	store.Save(false)
	assert.False(t, NewPreferenceStore(backend, zap.NewNop()).Load())
}

// TestFailingBackendFallsBackToMemory verifies a throwing backend keeps
// the in-memory value authoritative for the session and only warns
func TestFailingBackendFallsBackToMemory(t *testing.T) {
	log, logs := observedLogger()
	store := NewPreferenceStore(failBackend{}, log)

	store.Save(true)
	assert.True(t, store.Enabled(), "in-memory value must survive a failed write")
	assert.True(t, store.Load(), "load over a failed backend keeps the in-memory value")
	assert.GreaterOrEqual(t, logs.Len(), 1, "backend failures should warn, not throw")
}

// TestFileBackendCreatesDirectory verifies writes create the namespace dir
func TestFileBackendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "promptbench", "celebrate.json")
	backend := &FileBackend{Path: path}

	store := NewPreferenceStore(backend, zap.NewNop())
	store.Save(true)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"enabled":true}`, string(data))
}
