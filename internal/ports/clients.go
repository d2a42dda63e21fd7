package ports

import (
	"context"

	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
)

// FeedClient defines the client port for the upstream article feed.
// Implemented by the feed adapter; called by the application layer.
type FeedClient interface {
	// FetchArticles returns the articles currently published upstream.
	FetchArticles(ctx context.Context) ([]article.Article, error)
}
