package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestRoundTrip(t *testing.T) {
	c := newTestCache(t)

	payload := []map[string]interface{}{
		{"title": "Stand Up la Sibiu", "price": "75"},
		{"title": "Teatru în aer liber"},
	}
	c.Put("evt", "sibiu", payload)

	var got []map[string]interface{}
	if !c.Get("evt", "sibiu", &got) {
		t.Fatal("expected a cache hit immediately after Put")
	}
	if !reflect.DeepEqual(got, payload) {
		t.Errorf("payload mismatch: got %+v, expected %+v", got, payload)
	}
}

func TestMissWhenAbsent(t *testing.T) {
	c := newTestCache(t)

	var got []string
	if c.Get("evt", "never-written", &got) {
		t.Error("expected a miss for a key never written")
	}
}

func TestNamespaceSeparation(t *testing.T) {
	c := newTestCache(t)

	c.Put("evt", "sibiu", []string{"event"})

	var got []string
	if c.Get("loc", "sibiu", &got) {
		t.Error("expected a miss: same key under a different namespace")
	}
}

func TestExpiry(t *testing.T) {
	c := newTestCache(t)

	c.Put("evt", "sibiu", []string{"event"})

	// Age the entry past the TTL by rewinding the file's mtime.
	path := filepath.Join(c.dir, fileName("evt", "sibiu"))
	old := time.Now().Add(-TTL - time.Minute)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	var got []string
	if c.Get("evt", "sibiu", &got) {
		t.Error("expected a miss for an expired entry")
	}

	// Expired entries are treated as misses but never deleted.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expired entry should remain on disk: %v", err)
	}
}

func TestKeyDerivation(t *testing.T) {
	if fileName("evt", "sibiu") != fileName("evt", "sibiu") {
		t.Error("equal keys must derive equal file names")
	}
	if fileName("evt", "sibiu") == fileName("evt", "cluj-napoca") {
		t.Error("different keys must derive different file names")
	}
	if fileName("evt", "sibiu") == fileName("loc", "sibiu") {
		t.Error("different namespaces must derive different file names")
	}
}

func TestClearAll(t *testing.T) {
	c := newTestCache(t)

	c.Put("evt", "sibiu", []string{"a"})
	c.Put("evt", "cluj-napoca", []string{"b"})
	c.Put("loc", "sibiu", []string{"c"})

	removed, err := c.ClearAll()
	if err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, expected 3", removed)
	}

	var got []string
	if c.Get("evt", "sibiu", &got) {
		t.Error("expected a miss after ClearAll")
	}

	// Clearing an already-empty cache removes nothing.
	removed, err = c.ClearAll()
	if err != nil {
		t.Fatalf("second ClearAll failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, expected 0", removed)
	}
}

func TestClearAllMissingDirectory(t *testing.T) {
	c := &Cache{dir: filepath.Join(t.TempDir(), "does-not-exist")}

	removed, err := c.ClearAll()
	if err != nil {
		t.Fatalf("ClearAll on a missing directory should not fail: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, expected 0", removed)
	}
}

func TestPutOverwrites(t *testing.T) {
	c := newTestCache(t)

	c.Put("evt", "sibiu", []string{"old"})
	c.Put("evt", "sibiu", []string{"new"})

	var got []string
	if !c.Get("evt", "sibiu", &got) {
		t.Fatal("expected a hit")
	}
	if len(got) != 1 || got[0] != "new" {
		t.Errorf("got %v, expected [new]", got)
	}
}
