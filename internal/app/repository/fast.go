package repository

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// HasFastTier reports whether the fast-path view is backed by its own store.
// Without one, the *InMemory methods are aliases of the primary operations.
func (r *Repository[K, V]) HasFastTier() bool {
	return r.fast != nil
}

// GetFromMemory reads id from the fast tier, falling back to the primary
// store on a miss and populating the fast tier with what it finds.
func (r *Repository[K, V]) GetFromMemory(ctx context.Context, id K) (V, bool, error) {
	if r.fast == nil {
		return r.Get(ctx, id)
	}

	// The read lock is held across miss handling so a concurrent save cannot
	// commit between the primary read and the fast tier population.
	r.mu.RLock()
	defer r.mu.RUnlock()

	if v, found, err := r.getOne(ctx, r.fast, "get_fast", id); err == nil && found {
		return v, true, nil
	} else if err != nil {
		r.fastReadFailed(ctx, err)
	}

	v, found, err := r.getOne(ctx, r.store, "get", id)
	if err != nil || !found {
		return v, found, err
	}
	r.populate(ctx, []V{v})
	return v, true, nil
}

// GetAllFromMemory returns the entities among ids, serving what it can from
// the fast tier and loading the rest from the primary store in one query.
func (r *Repository[K, V]) GetAllFromMemory(ctx context.Context, ids []K) ([]V, error) {
	if r.fast == nil {
		return r.GetAll(ctx, ids)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.keys(ids)
	hits, err := r.load(ctx, r.fast, "get_all_fast", ports.ByIDs(r.kind, keys...))
	if err != nil {
		r.fastReadFailed(ctx, err)
		hits = nil
	}

	seen := make(map[string]struct{}, len(hits))
	for _, v := range hits {
		seen[r.key(r.adapter.ID(v))] = struct{}{}
	}
	var missing []string
	for _, k := range keys {
		if _, ok := seen[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return hits, nil
	}

	loaded, err := r.load(ctx, r.store, "get_all", ports.ByIDs(r.kind, missing...))
	if err != nil {
		return nil, err
	}
	r.populate(ctx, loaded)
	return append(hits, loaded...), nil
}

// ContainsInMemory reports whether id exists, consulting the fast tier first.
func (r *Repository[K, V]) ContainsInMemory(ctx context.Context, id K) (bool, error) {
	_, found, err := r.GetFromMemory(ctx, id)
	return found, err
}

// SaveInMemory upserts v. Writes always go through the primary store and are
// then written through to the fast tier, so this is equivalent to Save.
func (r *Repository[K, V]) SaveInMemory(ctx context.Context, v V) (V, error) {
	return r.Save(ctx, v)
}

// SaveAllInMemory upserts vs atomically; equivalent to SaveAll.
func (r *Repository[K, V]) SaveAllInMemory(ctx context.Context, vs []V) ([]V, error) {
	return r.SaveAll(ctx, vs)
}

// populate copies primary-store values into the fast tier. Failures only
// cost a future miss, so they are logged and dropped.
func (r *Repository[K, V]) populate(ctx context.Context, vs []V) {
	if len(vs) == 0 {
		return
	}
	err := r.exec(ctx, r.fast, true, func(tx ports.StoreTxn) error {
		for _, v := range vs {
			rec, err := r.record(v)
			if err != nil {
				return err
			}
			if err := tx.Put(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.WarnContext(ctx, "fast tier population failed",
			slog.String("fast_store", r.fast.Name()),
			slog.Any("error", err),
		)
	}
}

func (r *Repository[K, V]) fastReadFailed(ctx context.Context, err error) {
	r.logger.WarnContext(ctx, "fast tier read failed, using primary store",
		slog.String("fast_store", r.fast.Name()),
		slog.Any("error", err),
	)
}
