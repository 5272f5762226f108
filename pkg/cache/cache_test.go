package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v", data, ok, err)
	}
	if string(data) != "value" {
		t.Errorf("Get() = %q, want %q", data, "value")
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() hit for absent key")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() hit for expired entry")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() hit after Delete()")
	}
	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("NullCache stored a value")
	}
}

func TestScoped(t *testing.T) {
	inner, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer inner.Close()

	ctx := context.Background()
	a := NewScoped(inner, "a:")
	b := NewScoped(inner, "b:")

	if err := a.Set(ctx, "k", []byte("from-a"), 0); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := b.Get(ctx, "k"); ok {
		t.Error("scopes share keys")
	}
	data, ok, _ := a.Get(ctx, "k")
	if !ok || string(data) != "from-a" {
		t.Errorf("scoped Get() = %q, %v", data, ok)
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("layout", "tree-hash", "left-right", 800.0)
	b := Key("layout", "tree-hash", "left-right", 800.0)
	if a != b {
		t.Error("identical inputs produced different keys")
	}
	if a == Key("layout", "tree-hash", "right-left", 800.0) {
		t.Error("different inputs produced identical keys")
	}
	if len(a) != len("layout:")+64 {
		t.Errorf("key %q has unexpected length", a)
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("x"))
	if len(h) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(h))
	}
	if h != Hash([]byte("x")) {
		t.Error("Hash() not deterministic")
	}
}
