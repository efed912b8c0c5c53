package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if state, err := store.Load(); err != nil || state != nil {
		t.Fatalf("empty load = (%+v, %v), want (nil, nil)", state, err)
	}

	saved := &State{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    2592000,
		IssuedAt:     time.Now().UTC().Truncate(time.Second),
		User:         User{Email: "admin@victorexecutive.com", Role: "VictorAdmin"},
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || *loaded != *saved {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if state, _ := store.Load(); state != nil {
		t.Error("state survives clear")
	}

	// Clearing an already empty store is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("repeat clear: %v", err)
	}
}

func TestFileStoreUsesStorageKey(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.Save(&State{AccessToken: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, StorageKey+".json")); err != nil {
		t.Errorf("session file not at %s.json: %v", StorageKey, err)
	}
}

func TestFileStoreCorruptBlobReadsAsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, StorageKey+".json"), []byte("{truncated"), 0o600); err != nil {
		t.Fatalf("write corrupt blob: %v", err)
	}

	store := NewFileStore(dir)
	state, err := store.Load()
	if err != nil || state != nil {
		t.Errorf("corrupt load = (%+v, %v), want (nil, nil)", state, err)
	}
}
