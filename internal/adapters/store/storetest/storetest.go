// Package storetest provides contract tests for [ports.BackingStore]
// implementations.
package storetest

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// Subject is a store under test plus the hook that makes it unavailable.
type Subject struct {
	Store ports.BackingStore
	Close func() error
}

// Factory creates a fresh, empty store for each test invocation.
type Factory func(t *testing.T) Subject

// Run exercises the [ports.BackingStore] contract.
func Run(t *testing.T, factory Factory) {
	t.Run("PutAndQueryByIDs", func(t *testing.T) {
		s := factory(t).Store
		put(t, s, rec("article", "a", "1"), rec("article", "b", "2"), rec("article", "c", "3"))

		got := query(t, s, ports.ByIDs("article", "a", "c", "missing", "a"))
		if want := []string{"a", "c"}; !slices.Equal(ids(got), want) {
			t.Fatalf("ids = %v, want %v", ids(got), want)
		}
		for _, r := range got {
			if r.Kind != "article" {
				t.Errorf("Kind = %q, want article", r.Kind)
			}
		}
	})

	t.Run("EmptyIDsMatchNothing", func(t *testing.T) {
		s := factory(t).Store
		put(t, s, rec("article", "a", "1"))

		if got := query(t, s, ports.ByIDs("article")); len(got) != 0 {
			t.Fatalf("empty filter returned %d records", len(got))
		}
	})

	t.Run("AllOfIsScopedByKind", func(t *testing.T) {
		s := factory(t).Store
		put(t, s, rec("article", "a", "1"), rec("article", "b", "2"), rec("note", "a", "x"))

		if got := ids(query(t, s, ports.AllOf("article"))); !slices.Equal(got, []string{"a", "b"}) {
			t.Fatalf("article ids = %v, want [a b]", got)
		}
		if got := ids(query(t, s, ports.AllOf("note"))); !slices.Equal(got, []string{"a"}) {
			t.Fatalf("note ids = %v, want [a]", got)
		}
	})

	t.Run("PutReplacesSameIdentity", func(t *testing.T) {
		s := factory(t).Store
		put(t, s, rec("article", "a", "1"))
		put(t, s, rec("article", "a", "2"))

		got := query(t, s, ports.AllOf("article"))
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if string(got[0].Data) != "2" {
			t.Errorf("Data = %q, want %q", got[0].Data, "2")
		}
	})

	t.Run("DeleteByIDs", func(t *testing.T) {
		s := factory(t).Store
		ctx := context.Background()
		put(t, s, rec("article", "a", "1"), rec("article", "b", "2"), rec("article", "c", "3"))

		tx := begin(t, s, true)
		n, err := tx.Delete(ctx, ports.ByIDs("article", "a", "b", "zzz"))
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		if n != 2 {
			t.Errorf("deleted = %d, want 2", n)
		}
		if got := ids(query(t, s, ports.AllOf("article"))); !slices.Equal(got, []string{"c"}) {
			t.Fatalf("remaining = %v, want [c]", got)
		}
	})

	t.Run("DeleteAllOfKindKeepsOtherKinds", func(t *testing.T) {
		s := factory(t).Store
		ctx := context.Background()
		put(t, s, rec("article", "a", "1"), rec("note", "n", "x"))

		tx := begin(t, s, true)
		if _, err := tx.Delete(ctx, ports.AllOf("article")); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}

		if got := query(t, s, ports.AllOf("article")); len(got) != 0 {
			t.Errorf("articles remaining = %d, want 0", len(got))
		}
		if got := query(t, s, ports.AllOf("note")); len(got) != 1 {
			t.Errorf("notes remaining = %d, want 1", len(got))
		}
	})

	t.Run("RollbackDiscardsWrites", func(t *testing.T) {
		s := factory(t).Store
		ctx := context.Background()
		put(t, s, rec("article", "keep", "1"))

		tx := begin(t, s, true)
		if err := tx.Put(ctx, rec("article", "discard", "2")); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if _, err := tx.Delete(ctx, ports.ByIDs("article", "keep")); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		// Writes are visible inside the transaction that made them.
		inside, err := tx.Query(ctx, ports.AllOf("article"))
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if got := ids(inside); !slices.Equal(got, []string{"discard"}) {
			t.Fatalf("in-txn ids = %v, want [discard]", got)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("Rollback: %v", err)
		}

		if got := ids(query(t, s, ports.AllOf("article"))); !slices.Equal(got, []string{"keep"}) {
			t.Fatalf("after rollback ids = %v, want [keep]", got)
		}
	})

	t.Run("RollbackAfterCommitIsNoop", func(t *testing.T) {
		s := factory(t).Store
		ctx := context.Background()

		tx := begin(t, s, true)
		if err := tx.Put(ctx, rec("article", "a", "1")); err != nil {
			t.Fatalf("Put: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("Rollback after Commit: %v", err)
		}
		if got := query(t, s, ports.AllOf("article")); len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
	})

	t.Run("ReturnedDataIsDetached", func(t *testing.T) {
		s := factory(t).Store
		put(t, s, rec("article", "a", "abc"))

		got := query(t, s, ports.ByIDs("article", "a"))
		got[0].Data[0] = 'z'

		again := query(t, s, ports.ByIDs("article", "a"))
		if string(again[0].Data) != "abc" {
			t.Fatalf("Data = %q, want %q", again[0].Data, "abc")
		}
	})

	t.Run("UnavailableAfterClose", func(t *testing.T) {
		sub := factory(t)
		if !sub.Store.Available() {
			t.Fatal("Available() = false before Close")
		}
		if err := sub.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		if sub.Store.Available() {
			t.Fatal("Available() = true after Close")
		}
		_, err := sub.Store.Begin(context.Background(), false)
		if !errors.Is(err, domain.ErrUnavailable) {
			t.Fatalf("Begin after Close: got %v, want ErrUnavailable", err)
		}
	})
}

func rec(kind, id, data string) ports.Record {
	return ports.Record{Kind: kind, ID: id, Data: []byte(data)}
}

func begin(t *testing.T, s ports.BackingStore, writable bool) ports.StoreTxn {
	t.Helper()
	tx, err := s.Begin(context.Background(), writable)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return tx
}

func put(t *testing.T, s ports.BackingStore, records ...ports.Record) {
	t.Helper()
	ctx := context.Background()
	tx := begin(t, s, true)
	for _, r := range records {
		if err := tx.Put(ctx, r); err != nil {
			_ = tx.Rollback()
			t.Fatalf("Put %s/%s: %v", r.Kind, r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
}

func query(t *testing.T, s ports.BackingStore, f ports.Filter) []ports.Record {
	t.Helper()
	tx := begin(t, s, false)
	defer func() { _ = tx.Rollback() }()
	got, err := tx.Query(context.Background(), f)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	return got
}

// ids returns the record IDs in sorted order.
func ids(records []ports.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	slices.Sort(out)
	return out
}
