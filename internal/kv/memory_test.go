package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	type doc struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}

	if err := m.Set(ctx, "k", doc{Name: "a", N: 2}); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got doc
	if err := m.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "a" || got.N != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestMemoryMissingKey(t *testing.T) {
	m := NewMemory()

	var into any
	err := m.Get(context.Background(), "missing", &into)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryLastWriterWins(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []int{1, 2}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Set(ctx, "k", []int{3}); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got []int
	if err := m.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("expected full overwrite, got %v", got)
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var got string
	if err := m.Get(ctx, "k", &got); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// deleting an absent key is fine
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
