// Package repository implements a transactional, identity-keyed repository of
// entities over any ports.BackingStore.
//
// Every mutation runs in exactly one backing store transaction. Saves are
// always upserts: the stored value (or the zero value when absent) is merged
// with the incoming one through the EntityAdapter's Update hook, so two saves
// with the same identity never produce two records.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// Construction errors.
var (
	ErrNilStore   = errors.New("repository: nil backing store")
	ErrNilAdapter = errors.New("repository: nil entity adapter")
	ErrEmptyKind  = errors.New("repository: empty kind")
)

// Option configures a Repository.
type Option func(*options)

type options struct {
	fast    ports.BackingStore
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// WithFastTier attaches a secondary store that serves the fast-path view.
// It is kept consistent by write-through after every committed mutation.
func WithFastTier(s ports.BackingStore) Option {
	return func(o *options) { o.fast = s }
}

// WithLogger sets the logger used for transaction failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records per-operation counters and durations.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Repository stores entities of one kind. It is safe for concurrent use:
// mutations are serialized, reads run concurrently with each other.
type Repository[K comparable, V any] struct {
	kind    string
	store   ports.BackingStore
	fast    ports.BackingStore
	adapter ports.EntityAdapter[K, V]
	logger  *slog.Logger
	metrics *telemetry.Metrics

	mu sync.RWMutex
}

// Compile-time interface checks.
var (
	_ ports.Repository[string, struct{}]     = (*Repository[string, struct{}])(nil)
	_ ports.FastRepository[string, struct{}] = (*Repository[string, struct{}])(nil)
)

// New creates a repository for entities of kind stored in store.
func New[K comparable, V any](
	kind string,
	store ports.BackingStore,
	adapter ports.EntityAdapter[K, V],
	opts ...Option,
) (*Repository[K, V], error) {
	if kind == "" {
		return nil, ErrEmptyKind
	}
	if store == nil {
		return nil, ErrNilStore
	}
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Repository[K, V]{
		kind:    kind,
		store:   store,
		fast:    o.fast,
		adapter: adapter,
		logger:  o.logger.With(slog.String("kind", kind), slog.String("store", store.Name())),
		metrics: o.metrics,
	}, nil
}

// Kind returns the kind this repository stores.
func (r *Repository[K, V]) Kind() string {
	return r.kind
}

// IsAvailable reports whether the primary backing store is live.
func (r *Repository[K, V]) IsAvailable() bool {
	return r.store.Available()
}

// Get returns the entity with the given id.
func (r *Repository[K, V]) Get(ctx context.Context, id K) (V, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.getOne(ctx, r.store, "get", id)
}

// GetAll returns the entities whose identity matches any of ids, using a
// single disjunctive query. Unknown ids are omitted.
func (r *Repository[K, V]) GetAll(ctx context.Context, ids []K) ([]V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.load(ctx, r.store, "get_all", ports.ByIDs(r.kind, r.keys(ids)...))
}

// List returns every entity of this repository's kind.
func (r *Repository[K, V]) List(ctx context.Context) ([]V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.load(ctx, r.store, "list", ports.AllOf(r.kind))
}

// Contains reports whether an entity with id exists.
func (r *Repository[K, V]) Contains(ctx context.Context, id K) (bool, error) {
	_, found, err := r.Get(ctx, id)
	return found, err
}

// Save upserts v and returns the merged value that was persisted.
func (r *Repository[K, V]) Save(ctx context.Context, v V) (V, error) {
	merged, err := r.SaveAll(ctx, []V{v})
	if err != nil {
		var zero V
		return zero, err
	}
	return merged[0], nil
}

// SaveAll upserts every value inside one transaction. On any failure the
// whole batch is rolled back. A repeated identity within the batch merges on
// top of the earlier value from the same batch.
func (r *Repository[K, V]) SaveAll(ctx context.Context, vs []V) ([]V, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := make([]V, 0, len(vs))
	var records []ports.Record

	err := r.observe(ctx, "save", func() error {
		return r.exec(ctx, r.store, true, func(tx ports.StoreTxn) error {
			for _, v := range vs {
				m, rec, err := r.upsert(ctx, tx, v)
				if err != nil {
					return err
				}
				merged = append(merged, m)
				records = append(records, rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, r.fail("save", err)
	}

	r.mirror(ctx, func(tx ports.StoreTxn) error {
		for _, rec := range records {
			if err := tx.Put(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	return merged, nil
}

// Delete removes the entity identified by id.
func (r *Repository[K, V]) Delete(ctx context.Context, id K, _ V) error {
	return r.deleteKeys(ctx, "delete", []string{r.key(id)})
}

// DeleteAll removes every given entity inside one transaction.
func (r *Repository[K, V]) DeleteAll(ctx context.Context, vs []V) error {
	keys := make([]string, 0, len(vs))
	for _, v := range vs {
		keys = append(keys, r.key(r.adapter.ID(v)))
	}
	return r.deleteKeys(ctx, "delete_all", keys)
}

// Clear removes every entity of this repository's kind.
func (r *Repository[K, V]) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.observe(ctx, "clear", func() error {
		return r.exec(ctx, r.store, true, func(tx ports.StoreTxn) error {
			_, err := tx.Delete(ctx, ports.AllOf(r.kind))
			return err
		})
	})
	if err != nil {
		return r.fail("clear", err)
	}

	r.mirror(ctx, func(tx ports.StoreTxn) error {
		_, err := tx.Delete(ctx, ports.AllOf(r.kind))
		return err
	})
	return nil
}

func (r *Repository[K, V]) deleteKeys(ctx context.Context, op string, keys []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter := ports.ByIDs(r.kind, keys...)
	err := r.observe(ctx, op, func() error {
		return r.exec(ctx, r.store, true, func(tx ports.StoreTxn) error {
			_, err := tx.Delete(ctx, filter)
			return err
		})
	})
	if err != nil {
		return r.fail(op, err)
	}

	r.mirror(ctx, func(tx ports.StoreTxn) error {
		_, err := tx.Delete(ctx, filter)
		return err
	})
	return nil
}

// upsert resolves the existing record for v inside tx, merges, and stages
// the result. The merged value must keep v's identity.
func (r *Repository[K, V]) upsert(ctx context.Context, tx ports.StoreTxn, v V) (V, ports.Record, error) {
	var zero V
	id := r.adapter.ID(v)

	recs, err := tx.Query(ctx, ports.ByIDs(r.kind, r.key(id)))
	if err != nil {
		return zero, ports.Record{}, err
	}

	var existing V
	if len(recs) > 0 {
		if existing, err = decode[V](recs[0].Data); err != nil {
			return zero, ports.Record{}, err
		}
	}

	merged := r.adapter.Update(existing, v)
	if got := r.adapter.ID(merged); got != id {
		return zero, ports.Record{}, fmt.Errorf("%s %v: update changed identity to %v: %w", r.kind, id, got, domain.ErrConflict)
	}

	rec, err := r.record(merged)
	if err != nil {
		return zero, ports.Record{}, err
	}
	if err := tx.Put(ctx, rec); err != nil {
		return zero, ports.Record{}, err
	}
	return merged, rec, nil
}

func (r *Repository[K, V]) getOne(ctx context.Context, store ports.BackingStore, op string, id K) (V, bool, error) {
	var zero V
	found, err := r.load(ctx, store, op, ports.ByIDs(r.kind, r.key(id)))
	if err != nil || len(found) == 0 {
		return zero, false, err
	}
	return found[0], true, nil
}

// load runs a read-only query against store and decodes the matches.
func (r *Repository[K, V]) load(ctx context.Context, store ports.BackingStore, op string, f ports.Filter) ([]V, error) {
	out := []V{}
	run := func() error {
		return r.exec(ctx, store, false, func(tx ports.StoreTxn) error {
			recs, err := tx.Query(ctx, f)
			if err != nil {
				return err
			}
			for _, rec := range recs {
				v, err := decode[V](rec.Data)
				if err != nil {
					return err
				}
				out = append(out, v)
			}
			return nil
		})
	}

	var err error
	if store == r.store {
		err = r.observe(ctx, op, run)
	} else {
		err = run()
	}
	if err != nil {
		return nil, r.fail(op, err)
	}
	return out, nil
}

// exec runs fn inside one transaction on store. Read transactions are always
// rolled back; write transactions commit only if fn succeeds. A panic in fn
// (an adapter's Update, say) rolls the transaction back before it propagates.
func (r *Repository[K, V]) exec(ctx context.Context, store ports.BackingStore, writable bool, fn func(ports.StoreTxn) error) error {
	if !store.Available() {
		return fmt.Errorf("%s: %w", store.Name(), domain.ErrUnavailable)
	}

	tx, err := store.Begin(ctx, writable)
	if err != nil {
		return err
	}
	defer func() {
		if rec := recover(); rec != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.WarnContext(ctx, "rollback after panic failed", slog.Any("error", rbErr))
			}
			panic(rec)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.WarnContext(ctx, "rollback failed", slog.Any("error", rbErr))
		}
		return err
	}

	if !writable {
		return tx.Rollback()
	}
	return tx.Commit()
}

// mirror replays a committed mutation on the fast tier. A failed replay
// empties the fast tier's copy of this kind so it can never serve stale data.
func (r *Repository[K, V]) mirror(ctx context.Context, fn func(ports.StoreTxn) error) {
	if r.fast == nil {
		return
	}
	if err := r.exec(ctx, r.fast, true, fn); err != nil {
		r.logger.WarnContext(ctx, "fast tier write-through failed, invalidating",
			slog.String("fast_store", r.fast.Name()),
			slog.Any("error", err),
		)
		r.invalidate(ctx)
	}
}

func (r *Repository[K, V]) invalidate(ctx context.Context) {
	err := r.exec(ctx, r.fast, true, func(tx ports.StoreTxn) error {
		_, err := tx.Delete(ctx, ports.AllOf(r.kind))
		return err
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "fast tier invalidation failed",
			slog.String("fast_store", r.fast.Name()),
			slog.Any("error", err),
		)
	}
}

// fail wraps a transaction error for callers. Unavailable, conflict and
// context errors keep their identity; everything else is a persistence error.
func (r *Repository[K, V]) fail(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s %s: %w", op, r.kind, err)
	default:
		return fmt.Errorf("%s %s: %w: %w", op, r.kind, domain.ErrPersistence, err)
	}
}

func (r *Repository[K, V]) observe(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	err := fn()

	if r.metrics != nil {
		result := telemetry.ResultSuccess
		if err != nil {
			result = telemetry.ResultError
		}
		attrs := metric.WithAttributes(
			telemetry.AttrOperation.String(op),
			telemetry.AttrKind.String(r.kind),
			telemetry.AttrStore.String(r.store.Name()),
			telemetry.AttrResult.String(result),
		)
		r.metrics.RepositoryOpTotal.Add(ctx, 1, attrs)
		r.metrics.RepositoryOpDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
	if err != nil {
		r.logger.DebugContext(ctx, "repository operation failed",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	}
	return err
}

func (r *Repository[K, V]) key(id K) string {
	if s, ok := any(id).(string); ok {
		return s
	}
	return fmt.Sprint(id)
}

func (r *Repository[K, V]) keys(ids []K) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.key(id))
	}
	return out
}

func (r *Repository[K, V]) record(v V) (ports.Record, error) {
	id := r.adapter.ID(v)
	data, err := json.Marshal(v)
	if err != nil {
		return ports.Record{}, fmt.Errorf("encoding %s %v: %w", r.kind, id, err)
	}
	return ports.Record{Kind: r.kind, ID: r.key(id), Data: data}, nil
}

func decode[V any](data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decoding record: %w", err)
	}
	return v, nil
}
