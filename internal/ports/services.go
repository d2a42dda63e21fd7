package ports

import (
	"context"

	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
)

// ArticleService defines the service port for article operations.
// Implemented by the application layer; called by inbound adapters (handlers).
// Every call runs as a task on the executor and returns that task's outcome.
type ArticleService interface {
	// ListArticles returns every stored article.
	ListArticles(ctx context.Context) ([]article.Article, error)

	// GetArticles returns the stored articles among ids. Unknown ids are skipped.
	GetArticles(ctx context.Context, ids []string) ([]article.Article, error)

	// GetArticle returns a single article.
	// Returns domain.ErrNotFound if the article does not exist.
	GetArticle(ctx context.Context, id string) (*article.Article, error)

	// SaveArticle validates and upserts one article, returning the merged result.
	// An empty ID is assigned a fresh one.
	// Returns domain.ErrValidation if the article fails validation.
	SaveArticle(ctx context.Context, a *article.Article) (*article.Article, error)

	// SaveArticles validates and upserts a batch atomically.
	// Returns domain.ErrValidation naming the offending index if any article is invalid.
	SaveArticles(ctx context.Context, as []article.Article) ([]article.Article, error)

	// DeleteArticle removes one article.
	// Returns domain.ErrNotFound if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error

	// DeleteArticles removes the given ids atomically. Unknown ids are ignored.
	DeleteArticles(ctx context.Context, ids []string) error

	// StartSync schedules a background import from the upstream feed and
	// returns the ID of the scheduled task.
	StartSync(ctx context.Context) (string, error)

	// LastSync reports the outcome of the most recent completed sync.
	LastSync(ctx context.Context) SyncStatus
}

// SyncStatus describes the most recent feed sync.
type SyncStatus struct {
	TaskID   string
	State    SyncState
	Imported int
	Error    string
}

// SyncState is the lifecycle state of a feed sync.
type SyncState string

const (
	SyncIdle      SyncState = "idle"
	SyncRunning   SyncState = "running"
	SyncSucceeded SyncState = "succeeded"
	SyncFailed    SyncState = "failed"
)
