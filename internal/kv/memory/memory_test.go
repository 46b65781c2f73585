package memory

import (
	"context"
	"testing"
)

func TestStoreGetPut(t *testing.T) {
	ctx := context.Background()
	s := New(map[string]string{"seeded": "1"})

	if v, ok, err := s.Get(ctx, "seeded"); err != nil || !ok || v != "1" {
		t.Fatalf("Get(seeded) = %q, %v, %v", v, ok, err)
	}

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) ok = %v, err = %v, want absent", ok, err)
	}

	if err := s.Put(ctx, "k", "v1"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, "k", "v2"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if v, _, _ := s.Get(ctx, "k"); v != "v2" {
		t.Errorf("Get(k) = %q, want v2", v)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStoreSeedIsCopied(t *testing.T) {
	seed := map[string]string{"a": "1"}
	s := New(seed)
	seed["a"] = "changed"

	if v, _, _ := s.Get(context.Background(), "a"); v != "1" {
		t.Errorf("Get(a) = %q, want 1", v)
	}
}

func TestStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(nil)
	if err := s.Put(ctx, "k", "v"); err == nil {
		t.Error("Put() with canceled context should fail")
	}
	if _, _, err := s.Get(ctx, "k"); err == nil {
		t.Error("Get() with canceled context should fail")
	}
}
