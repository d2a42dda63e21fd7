// Package memdb implements ports.BackingStore on top of hashicorp/go-memdb.
// Write transactions are exclusive; read transactions see an immutable
// snapshot taken at Begin.
package memdb

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

const (
	tableRecords = "records"
	indexID      = "id"
	indexKind    = "kind"
)

var errTxnDone = errors.New("transaction already finished")

var errReadOnly = errors.New("write in read-only transaction")

// row is the value stored in the records table. Index fields are read by
// reflection so they must stay exported.
type row struct {
	Kind string
	ID   string
	Data []byte
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableRecords: {
				Name: tableRecords,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:   indexID,
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "Kind"},
								&memdb.StringFieldIndex{Field: "ID"},
							},
						},
					},
					indexKind: {
						Name:    indexKind,
						Indexer: &memdb.StringFieldIndex{Field: "Kind"},
					},
				},
			},
		},
	}
}

// Store is an in-memory transactional record store.
type Store struct {
	name   string
	db     *memdb.MemDB
	closed atomic.Bool
}

// Compile-time interface checks.
var (
	_ ports.BackingStore  = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// New creates an empty store. name distinguishes several memdb stores in logs
// and health output (for example the primary tier and the fast tier).
func New(name string) (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("creating memdb: %w", err)
	}
	if name == "" {
		name = "memdb"
	}
	return &Store{name: name, db: db}, nil
}

// Name implements ports.BackingStore and ports.HealthChecker.
func (s *Store) Name() string {
	return "store:" + s.name
}

// Available implements ports.BackingStore.
func (s *Store) Available() bool {
	return !s.closed.Load()
}

// Close marks the store unavailable. Data is released with the store.
func (s *Store) Close() error {
	s.closed.Store(true)
	return nil
}

// HealthCheck implements ports.HealthChecker.
func (s *Store) HealthCheck(_ context.Context) error {
	if !s.Available() {
		return fmt.Errorf("%s closed: %w", s.Name(), domain.ErrUnavailable)
	}
	return nil
}

// Begin implements ports.BackingStore.
func (s *Store) Begin(ctx context.Context, writable bool) (ports.StoreTxn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.Available() {
		return nil, fmt.Errorf("%s closed: %w", s.Name(), domain.ErrUnavailable)
	}
	return &txn{inner: s.db.Txn(writable), writable: writable}, nil
}

type txn struct {
	inner    *memdb.Txn
	writable bool
	done     bool
}

func (t *txn) Query(_ context.Context, f ports.Filter) ([]ports.Record, error) {
	rows, err := t.match(f)
	if err != nil {
		return nil, err
	}
	out := make([]ports.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, ports.Record{Kind: r.Kind, ID: r.ID, Data: slices.Clone(r.Data)})
	}
	return out, nil
}

func (t *txn) Put(_ context.Context, r ports.Record) error {
	if err := t.checkWrite(); err != nil {
		return err
	}
	stored := &row{Kind: r.Kind, ID: r.ID, Data: slices.Clone(r.Data)}
	if err := t.inner.Insert(tableRecords, stored); err != nil {
		return fmt.Errorf("inserting %s/%s: %w", r.Kind, r.ID, err)
	}
	return nil
}

func (t *txn) Delete(_ context.Context, f ports.Filter) (int, error) {
	if err := t.checkWrite(); err != nil {
		return 0, err
	}
	if f.All {
		n, err := t.inner.DeleteAll(tableRecords, indexKind, f.Kind)
		if err != nil {
			return 0, fmt.Errorf("deleting kind %s: %w", f.Kind, err)
		}
		return n, nil
	}

	rows, err := t.match(f)
	if err != nil {
		return 0, err
	}
	for _, r := range rows {
		if err := t.inner.Delete(tableRecords, r); err != nil {
			return 0, fmt.Errorf("deleting %s/%s: %w", r.Kind, r.ID, err)
		}
	}
	return len(rows), nil
}

func (t *txn) Commit() error {
	if t.done {
		return errTxnDone
	}
	t.done = true
	t.inner.Commit()
	return nil
}

func (t *txn) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.inner.Abort()
	return nil
}

func (t *txn) checkWrite() error {
	if t.done {
		return errTxnDone
	}
	if !t.writable {
		return errReadOnly
	}
	return nil
}

// match resolves a filter to stored rows. Duplicate ids in the filter yield
// one row.
func (t *txn) match(f ports.Filter) ([]*row, error) {
	if t.done {
		return nil, errTxnDone
	}

	if f.All {
		it, err := t.inner.Get(tableRecords, indexKind, f.Kind)
		if err != nil {
			return nil, fmt.Errorf("scanning kind %s: %w", f.Kind, err)
		}
		var rows []*row
		for obj := it.Next(); obj != nil; obj = it.Next() {
			rows = append(rows, obj.(*row))
		}
		return rows, nil
	}

	rows := make([]*row, 0, len(f.IDs))
	seen := make(map[string]struct{}, len(f.IDs))
	for _, id := range f.IDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		obj, err := t.inner.First(tableRecords, indexID, f.Kind, id)
		if err != nil {
			return nil, fmt.Errorf("looking up %s/%s: %w", f.Kind, id, err)
		}
		if obj != nil {
			rows = append(rows, obj.(*row))
		}
	}
	return rows, nil
}
