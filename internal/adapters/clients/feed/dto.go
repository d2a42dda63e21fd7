package feed

import (
	"strings"
	"time"

	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
)

// ArticleDTO is one entry of the upstream feed.
type ArticleDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
}

// ResponseDTO is the upstream feed envelope.
type ResponseDTO struct {
	Items []ArticleDTO `json:"items"`
}

// toDomain translates feed entries, skipping entries without an id.
// The second return value is the number of skipped entries.
func toDomain(dto ResponseDTO) ([]article.Article, int) {
	out := make([]article.Article, 0, len(dto.Items))
	skipped := 0
	for _, item := range dto.Items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			skipped++
			continue
		}
		a := article.Article{
			ID:     id,
			Title:  item.Title,
			Body:   item.Body,
			Author: item.Author,
			Tags:   append([]string(nil), item.Tags...),
		}
		if !item.PublishedAt.IsZero() {
			a.CreatedAt = item.PublishedAt.UTC()
		}
		out = append(out, a)
	}
	return out, skipped
}
