package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Iron-Ham/tripflow/internal/errors"
	"github.com/Iron-Ham/tripflow/internal/trip"
)

func TestFileStoreSaveLoad(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := fs.Save(ctx, "a/b/doc.json", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := fs.Load(ctx, "a/b/doc.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `{"x":1}` {
		t.Errorf("data = %s", data)
	}

	exists, err := fs.Exists(ctx, "a/b/doc.json")
	if err != nil || !exists {
		t.Errorf("Exists = %v, %v", exists, err)
	}

	if err := fs.Delete(ctx, "a/b/doc.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fs.Load(ctx, "a/b/doc.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete = %v, want ErrNotFound", err)
	}
	if err := fs.Delete(ctx, "a/b/doc.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double Delete = %v, want ErrNotFound", err)
	}
}

func TestFileStoreAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := fs.Save(context.Background(), "doc.json", []byte("data")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "doc.json" {
			t.Errorf("unexpected file %s left behind", e.Name())
		}
	}
}

func TestTripStateRoundTrip(t *testing.T) {
	ts, err := NewTripStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}
	ctx := context.Background()

	state := TripState{
		Source:      trip.City{Name: "Mumbai", State: "Maharashtra", Lat: 19.0760, Lon: 72.8777},
		Destination: trip.City{Name: "Goa", State: "Goa", Lat: 15.2993, Lon: 74.1240},
		DistanceKm:  462,
		TravelMode:  "train",
		Days:        4,
	}
	if err := ts.SaveTripState(ctx, state); err != nil {
		t.Fatalf("SaveTripState: %v", err)
	}
	loaded, err := ts.LoadTripState(ctx)
	if err != nil {
		t.Fatalf("LoadTripState: %v", err)
	}
	if loaded != state {
		t.Errorf("loaded = %+v, want %+v", loaded, state)
	}
}

func TestConfigurationRoundTripPreservesBytes(t *testing.T) {
	ts, err := NewTripStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}
	ctx := context.Background()

	cfg := trip.Configuration{
		TripSummary: trip.TripSummary{
			Source: "Mumbai", Destination: "Goa", DistanceKm: 462, TravelMode: "train", Days: 4,
		},
		Constraints: trip.Constraints{
			Pace: "balanced", PlacesPerDay: 3, StartTime: "moderate",
			Budget: "premium", ExperienceStyle: "balanced", ComfortLevel: "comfortable",
		},
		Interests:           []string{"beaches", "local food"},
		OptionalConstraints: trip.OptionalConstraints{VegetarianFriendly: true},
		AIModel:             trip.ModelStandard,
	}
	if err := ts.SaveConfiguration(ctx, cfg); err != nil {
		t.Fatalf("SaveConfiguration: %v", err)
	}
	loaded, err := ts.LoadConfiguration(ctx)
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}

	// The reloaded configuration must serialize to the exact bytes of the
	// original, since it is resent as the itinerary request payload.
	want, _ := json.Marshal(cfg)
	got, _ := json.Marshal(loaded)
	if string(want) != string(got) {
		t.Errorf("payload drifted:\n saved %s\nloaded %s", want, got)
	}
}

func TestLoadMissingDocuments(t *testing.T) {
	ts, err := NewTripStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}
	if _, err := ts.LoadTripState(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadTripState = %v, want ErrNotFound", err)
	}
	if _, err := ts.LoadConfiguration(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadConfiguration = %v, want ErrNotFound", err)
	}
}

func TestVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	ts, err := NewTripStore(dir)
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}

	stale := `{"version": 99, "saved_at": "2026-01-01T00:00:00Z", "data": {}}`
	path := filepath.Join(dir, "trip", "state.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(stale), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ts.LoadTripState(context.Background()); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("LoadTripState = %v, want ErrVersionMismatch", err)
	}
}

func TestClear(t *testing.T) {
	ts, err := NewTripStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}
	ctx := context.Background()

	if err := ts.SaveTripState(ctx, TripState{Days: 4}); err != nil {
		t.Fatal(err)
	}
	if err := ts.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := ts.LoadTripState(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadTripState after Clear = %v", err)
	}
	// Clearing an empty store is fine.
	if err := ts.Clear(ctx); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}
