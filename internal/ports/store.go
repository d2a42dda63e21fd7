package ports

import "context"

// Record is the persisted form of one entity: a kind, an identity, and an
// encoded payload.
type Record struct {
	Kind string
	ID   string
	Data []byte
}

// Filter selects records of one kind. With All set every record of the kind
// matches; otherwise a record matches when its ID equals any of IDs, so an
// empty IDs list matches nothing.
type Filter struct {
	Kind string
	IDs  []string
	All  bool
}

// ByIDs builds a disjunctive identity filter.
func ByIDs(kind string, ids ...string) Filter {
	return Filter{Kind: kind, IDs: ids}
}

// AllOf builds a filter matching every record of kind.
func AllOf(kind string) Filter {
	return Filter{Kind: kind, All: true}
}

// BackingStore is a transactional record store sitting behind a repository.
type BackingStore interface {
	// Name identifies the store in logs and health reports.
	Name() string

	// Available reports whether the store handle is open.
	Available() bool

	// Begin opens a transaction. Read-only transactions must not be used to
	// Put or Delete.
	Begin(ctx context.Context, writable bool) (StoreTxn, error)
}

// StoreTxn is a single backing store transaction. Exactly one of Commit or
// Rollback ends it; Rollback after Commit is a no-op.
type StoreTxn interface {
	Query(ctx context.Context, f Filter) ([]Record, error)
	Put(ctx context.Context, r Record) error
	Delete(ctx context.Context, f Filter) (int, error)
	Commit() error
	Rollback() error
}
