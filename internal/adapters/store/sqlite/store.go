package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// maxFilterIDs bounds the number of bound parameters per IN clause.
const maxFilterIDs = 500

var (
	errTxnDone  = errors.New("transaction already finished")
	errReadOnly = errors.New("write in read-only transaction")
)

// Store implements ports.BackingStore over a migrated SQLite database.
type Store struct {
	DB     *sql.DB
	closed atomic.Bool
}

// Compile-time interface checks.
var (
	_ ports.BackingStore  = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// NewStore wraps an opened database (see Open).
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Name implements ports.BackingStore and ports.HealthChecker.
func (s *Store) Name() string {
	return "store:sqlite"
}

// Available implements ports.BackingStore.
func (s *Store) Available() bool {
	return s.DB != nil && !s.closed.Load()
}

// Close closes the underlying database. The store is unavailable afterwards.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.DB.Close()
}

// HealthCheck implements ports.HealthChecker by pinging the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	if !s.Available() {
		return fmt.Errorf("sqlite closed: %w", domain.ErrUnavailable)
	}
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

// Begin implements ports.BackingStore.
func (s *Store) Begin(ctx context.Context, writable bool) (ports.StoreTxn, error) {
	if !s.Available() {
		return nil, fmt.Errorf("sqlite closed: %w", domain.ErrUnavailable)
	}
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{ReadOnly: !writable})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &txn{tx: tx, writable: writable}, nil
}

type txn struct {
	tx       *sql.Tx
	writable bool
	done     bool
}

func (t *txn) Query(ctx context.Context, f ports.Filter) ([]ports.Record, error) {
	if t.done {
		return nil, errTxnDone
	}

	if f.All {
		rows, err := t.tx.QueryContext(ctx,
			`SELECT kind, id, data FROM records WHERE kind = ? ORDER BY id`, f.Kind)
		if err != nil {
			return nil, fmt.Errorf("query kind %s: %w", f.Kind, err)
		}
		return scanRecords(rows)
	}

	var out []ports.Record
	for _, chunk := range chunkIDs(dedupe(f.IDs)) {
		where, args := idClause(f.Kind, chunk)
		rows, err := t.tx.QueryContext(ctx, `SELECT kind, id, data FROM records WHERE `+where, args...)
		if err != nil {
			return nil, fmt.Errorf("query %s by id: %w", f.Kind, err)
		}
		recs, err := scanRecords(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

func (t *txn) Put(ctx context.Context, r ports.Record) error {
	if err := t.checkWrite(); err != nil {
		return err
	}
	data := r.Data
	if data == nil {
		data = []byte{}
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO records (kind, id, data) VALUES (?, ?, ?)
		 ON CONFLICT (kind, id) DO UPDATE SET
		   data = excluded.data,
		   updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		r.Kind, r.ID, data,
	)
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", r.Kind, r.ID, err)
	}
	return nil
}

func (t *txn) Delete(ctx context.Context, f ports.Filter) (int, error) {
	if err := t.checkWrite(); err != nil {
		return 0, err
	}

	if f.All {
		res, err := t.tx.ExecContext(ctx, `DELETE FROM records WHERE kind = ?`, f.Kind)
		if err != nil {
			return 0, fmt.Errorf("delete kind %s: %w", f.Kind, err)
		}
		n, _ := res.RowsAffected()
		return int(n), nil
	}

	total := 0
	for _, chunk := range chunkIDs(dedupe(f.IDs)) {
		where, args := idClause(f.Kind, chunk)
		res, err := t.tx.ExecContext(ctx, `DELETE FROM records WHERE `+where, args...)
		if err != nil {
			return 0, fmt.Errorf("delete %s by id: %w", f.Kind, err)
		}
		n, _ := res.RowsAffected()
		total += int(n)
	}
	return total, nil
}

func (t *txn) Commit() error {
	if t.done {
		return errTxnDone
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (t *txn) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
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

// idClause renders "kind = ? AND id IN (?, ...)" for a non-empty id list.
func idClause(kind string, ids []string) (string, []any) {
	args := make([]any, 0, len(ids)+1)
	args = append(args, kind)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	return "kind = ? AND id IN (" + placeholders + ")", args
}

func chunkIDs(ids []string) [][]string {
	var chunks [][]string
	for len(ids) > 0 {
		n := min(len(ids), maxFilterIDs)
		chunks = append(chunks, ids[:n])
		ids = ids[n:]
	}
	return chunks
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func scanRecords(rows *sql.Rows) ([]ports.Record, error) {
	defer rows.Close()

	var out []ports.Record
	for rows.Next() {
		var r ports.Record
		if err := rows.Scan(&r.Kind, &r.ID, &r.Data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
