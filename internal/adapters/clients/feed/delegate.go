package feed

import (
	"context"
	"errors"

	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// ErrNilClient is returned by NewDelegate when no feed client is given.
var ErrNilClient = errors.New("feed: nil client")

// Delegate is a network task delegate: one Execute is one fetch of the feed.
// Pair it with ComposeError so transport failures reach the task's postable
// as categorized errors.
type Delegate struct {
	client ports.FeedClient
}

var _ ports.Delegate[[]article.Article] = (*Delegate)(nil)

// NewDelegate wraps client as a task delegate.
func NewDelegate(client ports.FeedClient) (*Delegate, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &Delegate{client: client}, nil
}

// Execute fetches the feed. Errors are returned as-is; composition happens in
// the task.
func (d *Delegate) Execute(ctx context.Context) ([]article.Article, error) {
	return d.client.FetchArticles(ctx)
}
