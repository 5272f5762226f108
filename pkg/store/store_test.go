package store

import (
	"context"
	"errors"
	"testing"

	"github.com/t0mdavid-m/seqviz/pkg/viz"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	l := &viz.Layout{VizType: viz.VizTypeDendrogram, Width: 800, Height: 600, LeafOrder: []string{"A", "B"}}
	rec, err := s.Put(ctx, l)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Put() assigned empty ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Put() left CreatedAt zero")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Layout.VizType != viz.VizTypeDendrogram || len(got.Layout.LeafOrder) != 2 {
		t.Errorf("Get() layout = %+v", got.Layout)
	}
}

func TestMemoryStore_UniqueIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a, _ := s.Put(ctx, &viz.Layout{})
	b, _ := s.Put(ctx, &viz.Layout{})
	if a.ID == b.ID {
		t.Error("Put() reused an ID")
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, _ := s.Put(ctx, &viz.Layout{})
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() = %v, want ErrNotFound", err)
	}
}
