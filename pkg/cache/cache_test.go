package cache

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}

	// Round trip
	want := []byte(`{"elements":[]}`)
	if err := c.Set(ctx, "layout:abc", want, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	// Expired entries count as misses
	if err := c.Set(ctx, "layout:old", want, time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	_, hit, _ = c.Get(ctx, "layout:old")
	if hit {
		t.Error("expired entry should be a miss")
	}

	// Delete is idempotent
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	_, hit, _ = c.Get(ctx, "layout:abc")
	if hit {
		t.Error("deleted entry should be a miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// LayoutKey is deterministic and carries the fixed prefix
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Archetype: "funnel"})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Archetype: "funnel"})
	if lk1 != lk2 {
		t.Error("identical inputs should produce identical keys")
	}
	if lk1[:7] != "layout:" {
		t.Errorf("LayoutKey should carry the layout prefix: %s", lk1)
	}

	// Options participate in the key
	lk3 := k.LayoutKey("hash123", LayoutKeyOpts{Archetype: "pyramid"})
	if lk1 == lk3 {
		t.Error("different archetypes should produce different keys")
	}
	lk4 := k.LayoutKey("hash123", LayoutKeyOpts{Archetype: "funnel", OverlaysHash: "abc"})
	if lk1 == lk4 {
		t.Error("overlay hash should participate in the key")
	}

	// So does the input hash
	lk5 := k.LayoutKey("hash456", LayoutKeyOpts{Archetype: "funnel"})
	if lk1 == lk5 {
		t.Error("different input hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "c13.33x7.5:")

	key := scoped.LayoutKey("hash", LayoutKeyOpts{Archetype: "funnel"})
	if !strings.HasPrefix(key, "c13.33x7.5:") {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", key)
	}
	if strings.TrimPrefix(key, "c13.33x7.5:") != inner.LayoutKey("hash", LayoutKeyOpts{Archetype: "funnel"}) {
		t.Error("prefix should wrap the inner key unchanged")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.LayoutKey("hash", LayoutKeyOpts{Archetype: "funnel"})
	if !strings.HasPrefix(key, "prefix:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) = non-nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("wrapped error not reported retryable")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("message changed by wrapping: %s", err.Error())
	}

	permanent := errors.New("corrupt entry")
	if IsRetryable(permanent) {
		t.Error("unwrapped error reported retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	permanent := errors.New("corrupt entry")

	t.Run("first try succeeds", func(t *testing.T) {
		calls := 0
		if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil {
			t.Errorf("RetryWithBackoff: %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("permanent error stops immediately", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error { calls++; return permanent })
		if err != permanent {
			t.Errorf("err = %v, want the permanent error", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("transient error is retried", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(ctx, func() error {
			calls++
			if calls < 2 {
				return Retryable(ErrNetwork)
			}
			return nil
		})
		if err != nil {
			t.Errorf("RetryWithBackoff: %v", err)
		}
		if calls != 2 {
			t.Errorf("calls = %d, want 2", calls)
		}
	})
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
