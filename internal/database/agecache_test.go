package database

import (
	"context"
	"testing"
	"time"
)

// openTestCache opens an AgeCache in a temporary directory.
func openTestCache(t *testing.T, opts Options) *AgeCache {
	t.Helper()

	cache, err := Open(t.TempDir(), opts)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := cache.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return cache
}

// TestAgeCachePutGet tests the round trip through the cache.
func TestAgeCachePutGet(t *testing.T) {
	t.Parallel()

	cache := openTestCache(t, DefaultOptions())
	ctx := context.Background()

	created := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
	if err := cache.Put(ctx, "example.com", created, "Test Registrar"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, registrar, ok := cache.Get(ctx, "example.com")
	if !ok {
		t.Fatal("Get returned a miss for a stored entry")
	}
	if !got.Equal(created) {
		t.Errorf("created = %v, expected %v", got, created)
	}
	if registrar != "Test Registrar" {
		t.Errorf("registrar = %q, expected Test Registrar", registrar)
	}
}

// TestAgeCacheMiss tests that unknown domains miss.
func TestAgeCacheMiss(t *testing.T) {
	t.Parallel()

	cache := openTestCache(t, DefaultOptions())

	if _, _, ok := cache.Get(context.Background(), "unknown.test"); ok {
		t.Error("Get should miss for an unknown domain")
	}
}

// TestAgeCacheReplace tests that Put overwrites an existing entry.
func TestAgeCacheReplace(t *testing.T) {
	t.Parallel()

	cache := openTestCache(t, DefaultOptions())
	ctx := context.Background()

	first := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := cache.Put(ctx, "example.com", first, "A"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(ctx, "example.com", second, "B"); err != nil {
		t.Fatal(err)
	}

	got, registrar, ok := cache.Get(ctx, "example.com")
	if !ok {
		t.Fatal("Get returned a miss after replacement")
	}
	if !got.Equal(second) || registrar != "B" {
		t.Errorf("got (%v, %q), expected (%v, %q)", got, registrar, second, "B")
	}
}

// TestAgeCacheTTLExpiry tests that entries older than the TTL miss.
func TestAgeCacheTTLExpiry(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.TTL = time.Hour
	cache := openTestCache(t, opts)
	ctx := context.Background()

	created := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
	if err := cache.Put(ctx, "example.com", created, ""); err != nil {
		t.Fatal(err)
	}

	// Advance the cache's clock past the TTL.
	cache.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, _, ok := cache.Get(ctx, "example.com"); ok {
		t.Error("Get should miss for an entry older than the TTL")
	}
}
