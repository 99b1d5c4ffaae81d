package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %v, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) should miss")
	}

	if err := c.Set(ctx, "a", []byte("alpha"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := c.Set(ctx, "b", []byte("beta"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "alpha" {
		t.Errorf("Get(a) = %q, %v, %v", data, hit, err)
	}

	n, size, err := c.Stats()
	if err != nil || n != 2 || size == 0 {
		t.Errorf("Stats() = %d, %d, %v; want 2 entries", n, size, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() of missing key error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get(a) after Delete should miss")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("Stats() after Clear = %d entries", n)
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("Clear() should keep the directory: %v", err)
	}
}

func TestFileCacheExpiryAndCorruption(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	path := c.path("bad")
	if err := c.Set(ctx, "bad", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want silent miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	s1 := k.SnapshotKey("scene", SnapshotKeyOpts{Layout: "shelf", Width: 390, Height: 844})
	s2 := k.SnapshotKey("scene", SnapshotKeyOpts{Layout: "grid[0]", Width: 390, Height: 844})
	s3 := k.SnapshotKey("scene", SnapshotKeyOpts{Layout: "grid[0]", From: "shelf", Progress: 0.5, Width: 390, Height: 844})
	if s1 == s2 || s2 == s3 {
		t.Error("different SnapshotKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(s1, "snapshot:") {
		t.Errorf("SnapshotKey() = %q, want snapshot: prefix", s1)
	}

	a1 := k.ArtifactKey("snap", ArtifactKeyOpts{Format: "svg"})
	a2 := k.ArtifactKey("snap", ArtifactKeyOpts{Format: "json"})
	if a1 == a2 || !strings.HasPrefix(a1, "artifact:") {
		t.Errorf("ArtifactKey() = %q / %q", a1, a2)
	}
}

func TestScopedKeyer(t *testing.T) {
	tests := []struct {
		name  string
		inner Keyer
	}{
		{"explicit inner", NewDefaultKeyer()},
		{"nil inner", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewScopedKeyer(tt.inner, "server:")
			want := "server:" + NewDefaultKeyer().ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
			if got := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"}); got != want {
				t.Errorf("ArtifactKey() = %q, want %q", got, want)
			}
			if got := k.SnapshotKey("h", SnapshotKeyOpts{}); !strings.HasPrefix(got, "server:snapshot:") {
				t.Errorf("SnapshotKey() = %q", got)
			}
		})
	}
}

func TestRetryWithBackoff(t *testing.T) {
	retryBackoff = time.Millisecond
	defer func() { retryBackoff = 100 * time.Millisecond }()
	ctx := context.Background()
	errPermanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, nil, 1, false},
		{"non-retryable stops", 5, errPermanent, 1, true},
		{"retry then succeed", 1, Retryable(ErrNetwork), 2, false},
		{"gives up after three", 5, Retryable(ErrNetwork), 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("RetryWithBackoff() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	if err != context.Canceled {
		t.Errorf("RetryWithBackoff() = %v, want context.Canceled", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) || !errors.Is(err, ErrNetwork) || err.Error() != ErrNetwork.Error() {
		t.Errorf("Retryable(ErrNetwork) = %v", err)
	}
	if IsRetryable(ErrNetwork) {
		t.Error("bare error should not be retryable")
	}
}
