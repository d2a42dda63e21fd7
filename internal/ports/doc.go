// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by handlers.
// Task ports (Delegate, Postable, Runnable) describe a unit of work and who hears
// about its outcome. Persistence ports (Repository, BackingStore) describe the
// transactional key-value storage that delegates read and write through.
package ports
