package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/relabel/internal/testgraph"
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
		t.Errorf("NullCache.Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// exerciseCache runs the behaviour every backend shares.
func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "a", []byte("alpha"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "alpha" {
		t.Fatalf("Get(a) = %q, %v, %v", data, hit, err)
	}
	if err := c.Set(ctx, "a", []byte("beta"), 0); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if data, _, _ := c.Get(ctx, "a"); string(data) != "beta" {
		t.Errorf("after overwrite Get(a) = %q", data)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}

	if cl, ok := c.(Clearer); ok {
		_ = c.Set(ctx, "x", []byte("1"), 0)
		_ = c.Set(ctx, "y", []byte("2"), 0)
		if err := cl.Clear(ctx); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		for _, k := range []string{"x", "y"} {
			if _, hit, _ := c.Get(ctx, k); hit {
				t.Errorf("Get(%s) after Clear should miss", k)
			}
		}
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	exerciseCache(t, c)

	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	_ = c.Set(ctx, "ttl", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "ttl"); !hit {
		t.Error("entry should be live before expiry")
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "ttl"); hit {
		t.Error("entry should expire")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be dropped, Len() = %d", c.Len())
	}

	// Stored data is copied on the way in and out.
	buf := []byte("abc")
	_ = c.Set(ctx, "copy", buf, 0)
	buf[0] = 'z'
	got, _, _ := c.Get(ctx, "copy")
	got[1] = 'z'
	if again, _, _ := c.Get(ctx, "copy"); string(again) != "abc" {
		t.Errorf("MemoryCache leaked a reference: %q", again)
	}
}

func TestMemoryCacheKeepsFreshEntryOnExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("old"), time.Minute)
	now = now.Add(2 * time.Minute)
	// A Set lands between Get seeing the stale entry and dropping it.
	_ = c.Set(ctx, "k", []byte("new"), time.Minute)
	c.dropExpired("k")

	got, hit, _ := c.Get(ctx, "k")
	if !hit || string(got) != "new" {
		t.Errorf("Get = %q, %v; fresh entry was dropped", got, hit)
	}
}

func TestFileCache(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	exerciseCache(t, c)

	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("value"), 0)
	n, size, err := c.Size()
	if err != nil || n != 1 || size == 0 {
		t.Errorf("Size() = %d, %d, %v", n, size, err)
	}

	// Expired entries miss and are removed.
	_ = c.Set(ctx, "old", []byte("v"), time.Nanosecond)
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
		t.Error("expired entry file should be removed")
	}

	// Corrupt entries miss and are removed.
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v err %v", hit, err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("RELABEL_REDIS_ADDR")
	if addr == "" {
		t.Skip("RELABEL_REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "relabel-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{}); err == nil {
		t.Error("empty address should fail")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestGraphHash(t *testing.T) {
	a := GraphHash(testgraph.Path(5))
	if a != GraphHash(testgraph.Path(5)) {
		t.Error("GraphHash should be deterministic")
	}
	if a == GraphHash(testgraph.Star(5)) {
		t.Error("different graphs should hash differently")
	}
	// Same topology, with and without coordinates.
	if GraphHash(testgraph.Grid(1, 5)) == a {
		t.Error("coordinates should change the hash")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	r1 := k.ReportKey("h", ReportKeyOpts{Orderers: []string{"cm-first", "bfs-last"}})
	r2 := k.ReportKey("h", ReportKeyOpts{Orderers: []string{"bfs-last", "cm-first"}})
	if r1 != r2 {
		t.Error("orderer order should not change the report key")
	}
	if r1 == k.ReportKey("h", ReportKeyOpts{Orderers: []string{"cm-first"}}) {
		t.Error("different orderers should produce different keys")
	}
	if r1 == k.ReportKey("other", ReportKeyOpts{Orderers: []string{"cm-first", "bfs-last"}}) {
		t.Error("different graphs should produce different keys")
	}

	o1 := k.OrderingKey("h", "nd", ReportKeyOpts{LeafSize: 4})
	o2 := k.OrderingKey("h", "nd", ReportKeyOpts{LeafSize: 8})
	if o1 == o2 {
		t.Error("plugin settings should change the ordering key")
	}
	if o1 != k.OrderingKey("h", "nd", ReportKeyOpts{LeafSize: 4, Orderers: []string{"x"}}) {
		t.Error("orderer list should not change the ordering key")
	}
	if len(o1) < 10 || o1[:9] != "ordering:" {
		t.Errorf("ordering key prefix: %s", o1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "tenant:")
	key := scoped.ReportKey("h", ReportKeyOpts{})
	if key != "tenant:"+NewDefaultKeyer().ReportKey("h", ReportKeyOpts{}) {
		t.Errorf("ScopedKeyer ReportKey unexpected: %s", key)
	}
	key = scoped.OrderingKey("h", "cm-first", ReportKeyOpts{})
	if key[:7] != "tenant:" {
		t.Errorf("ScopedKeyer OrderingKey should be prefixed: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	retryDelay = time.Millisecond
	defer func() { retryDelay = 100 * time.Millisecond }()
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err %v, calls %d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return ErrNetwork })
	if err != ErrNetwork || calls != 1 {
		t.Errorf("non-retryable: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry once: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(ErrNetwork) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err %v, calls %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
