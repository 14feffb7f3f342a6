// Package session persists wizard state between runs. Storage is a generic
// file-backed key-value store with atomic writes, plus typed accessors for
// the two documents the wizard saves: the confirmed trip state and the
// committed configuration.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Iron-Ham/tripflow/internal/errors"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("not found")

// ErrVersionMismatch is returned when a stored document was written by an
// incompatible schema version. Callers treat it like an absent document.
var ErrVersionMismatch = errors.New("stored document version mismatch")

// ============================================================================
// FileStore - generic key-value file storage
// ============================================================================

// FileStore maps keys to files within a base directory, with "/" in keys as
// path separators. All writes are atomic: data lands in a temp file that is
// renamed into place, so readers never observe a partial document.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates a FileStore rooted at the given directory, creating it
// if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save persists data under the key using an atomic write.
func (fs *FileStore) Save(ctx context.Context, key string, data []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := fs.keyToPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return atomicWriteFile(path, data, 0644)
}

// Load retrieves the data stored under the key.
func (fs *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.keyToPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete removes the key. Deleting an absent key returns ErrNotFound.
func (fs *FileStore) Delete(ctx context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.keyToPath(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether the key has stored data.
func (fs *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, err := os.Stat(fs.keyToPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

func (fs *FileStore) keyToPath(key string) string {
	return filepath.Join(fs.baseDir, filepath.FromSlash(key))
}

// atomicWriteFile writes data to a temp file in the target directory and
// renames it into place.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	success = true
	return nil
}

// ============================================================================
// TripStore - typed wizard documents
// ============================================================================

// schemaVersion is bumped when a stored document's shape changes
// incompatibly. Older documents are then treated as absent.
const schemaVersion = 1

const (
	keyTripState     = "trip/state.json"
	keyConfiguration = "trip/config.json"
)

// envelope wraps every stored document with its schema version and write
// time. Data holds the document's exact bytes so reloading reproduces them
// unchanged.
type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

// TripState is the confirmed route the wizard persists once feasibility and
// mode are settled.
type TripState struct {
	Source      trip.City `json:"source"`
	Destination trip.City `json:"destination"`
	DistanceKm  int       `json:"distance_km"`
	TravelMode  string    `json:"travel_mode"`
	Days        int       `json:"days"`
}

// TripStore is the typed persistence layer for wizard documents.
type TripStore struct {
	store *FileStore
}

// NewTripStore creates a TripStore rooted at the given state directory.
func NewTripStore(stateDir string) (*TripStore, error) {
	fs, err := NewFileStore(stateDir)
	if err != nil {
		return nil, err
	}
	return &TripStore{store: fs}, nil
}

// SaveTripState persists the confirmed route.
func (ts *TripStore) SaveTripState(ctx context.Context, state TripState) error {
	return ts.save(ctx, keyTripState, state)
}

// LoadTripState retrieves the confirmed route. Returns ErrNotFound when
// nothing was saved and ErrVersionMismatch for incompatible documents.
func (ts *TripStore) LoadTripState(ctx context.Context) (TripState, error) {
	var state TripState
	if err := ts.load(ctx, keyTripState, &state); err != nil {
		return TripState{}, err
	}
	return state, nil
}

// SaveConfiguration persists the committed configuration exactly as the
// finalize service returned it.
func (ts *TripStore) SaveConfiguration(ctx context.Context, cfg trip.Configuration) error {
	return ts.save(ctx, keyConfiguration, cfg)
}

// LoadConfiguration retrieves the committed configuration. The reloaded
// value marshals to the same bytes that were saved, so it can be resent as
// an itinerary request unmodified.
func (ts *TripStore) LoadConfiguration(ctx context.Context) (trip.Configuration, error) {
	var cfg trip.Configuration
	if err := ts.load(ctx, keyConfiguration, &cfg); err != nil {
		return trip.Configuration{}, err
	}
	return cfg, nil
}

// Clear removes all persisted wizard documents.
func (ts *TripStore) Clear(ctx context.Context) error {
	for _, key := range []string{keyTripState, keyConfiguration} {
		if err := ts.store.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}

func (ts *TripStore) save(ctx context.Context, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	env := envelope{Version: schemaVersion, SavedAt: time.Now().UTC(), Data: raw}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	return ts.store.Save(ctx, key, data)
}

func (ts *TripStore) load(ctx context.Context, key string, out any) error {
	data, err := ts.store.Load(ctx, key)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to decode envelope: %w", err)
	}
	if env.Version != schemaVersion {
		return ErrVersionMismatch
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
