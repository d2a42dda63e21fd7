package ports

import "context"

// EntityAdapter supplies identity and merge policy for a repository's entities.
type EntityAdapter[K comparable, V any] interface {
	// ID returns the entity's identity. It must be pure and stable.
	ID(v V) K

	// Update merges incoming into existing and returns the value to persist.
	// existing is the zero value when no record with that identity exists yet.
	// The returned value must keep the same identity.
	Update(existing, incoming V) V
}

// Repository is a transactional, identity-keyed store of entities of one kind.
// Values returned by reads are detached copies; mutating them persists nothing.
type Repository[K comparable, V any] interface {
	// Get returns the entity with the given id and whether it was found.
	Get(ctx context.Context, id K) (V, bool, error)

	// GetAll returns the entities matching any of ids. Ids with no record
	// are omitted and no ordering is guaranteed.
	GetAll(ctx context.Context, ids []K) ([]V, error)

	// List returns every entity of this repository's kind.
	List(ctx context.Context) ([]V, error)

	// Contains reports whether an entity with id exists.
	Contains(ctx context.Context, id K) (bool, error)

	// Save upserts v through the adapter's Update hook in one transaction and
	// returns the persisted value.
	Save(ctx context.Context, v V) (V, error)

	// SaveAll upserts every value in a single transaction. Either all of
	// them become visible or none do. Results follow the input order.
	SaveAll(ctx context.Context, vs []V) ([]V, error)

	// Delete removes the entity identified by id. v is accepted for call-site
	// symmetry with Save and is not consulted.
	Delete(ctx context.Context, id K, v V) error

	// DeleteAll removes every given entity in a single transaction.
	DeleteAll(ctx context.Context, vs []V) error

	// Clear removes every entity of this repository's kind.
	Clear(ctx context.Context) error

	// IsAvailable reports whether the backing store handle is live.
	IsAvailable() bool
}

// FastRepository is the fast-path view of a repository. Callers must not
// assume it is backed by different storage or has different latency.
type FastRepository[K comparable, V any] interface {
	GetFromMemory(ctx context.Context, id K) (V, bool, error)
	GetAllFromMemory(ctx context.Context, ids []K) ([]V, error)
	ContainsInMemory(ctx context.Context, id K) (bool, error)
	SaveInMemory(ctx context.Context, v V) (V, error)
	SaveAllInMemory(ctx context.Context, vs []V) ([]V, error)
}
