package memory

import (
	"context"
	"testing"
)

func TestStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, b := s.Namespace("a"), s.Namespace("b")

	if err := a.SetItem(ctx, "token", "t-a"); err != nil {
		t.Fatalf("SetItem returned error: %v", err)
	}
	if _, ok, _ := b.GetItem(ctx, "token"); ok {
		t.Fatalf("expected namespace b to be empty")
	}
	v, ok, err := a.GetItem(ctx, "token")
	if err != nil || !ok || v != "t-a" {
		t.Fatalf("unexpected get: %q %v %v", v, ok, err)
	}

	if err := a.RemoveItem(ctx, "token"); err != nil {
		t.Fatalf("RemoveItem returned error: %v", err)
	}
	if _, ok, _ := a.GetItem(ctx, "token"); ok {
		t.Fatalf("expected token removed")
	}
}

func TestStore_Drop(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.Namespace("a").SetItem(ctx, "user", "{}")

	if err := s.Drop(ctx, "a"); err != nil {
		t.Fatalf("Drop returned error: %v", err)
	}
	if _, ok, _ := s.Namespace("a").GetItem(ctx, "user"); ok {
		t.Fatalf("expected namespace dropped")
	}
	if err := s.Namespace("missing").RemoveItem(ctx, "user"); err != nil {
		t.Fatalf("RemoveItem on missing namespace returned error: %v", err)
	}
}
