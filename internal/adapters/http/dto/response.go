// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// ArticleResponse represents a single article in HTTP responses.
type ArticleResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Author    string   `json:"author,omitempty"`
	Tags      []string `json:"tags"`
	Revision  int      `json:"revision"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// ArticleListResponse represents a list of articles in HTTP responses.
type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Count    int               `json:"count"`
}

// ToArticleResponse converts a domain Article entity to an HTTP response DTO.
func ToArticleResponse(a *article.Article) ArticleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		Author:    a.Author,
		Tags:      tags,
		Revision:  a.Revision,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// ToArticleListResponse converts a slice of domain Article entities to an
// HTTP list response DTO.
func ToArticleListResponse(articles []article.Article) ArticleListResponse {
	items := make([]ArticleResponse, len(articles))
	for i := range articles {
		items[i] = ToArticleResponse(&articles[i])
	}
	return ArticleListResponse{
		Articles: items,
		Count:    len(items),
	}
}

// SyncAcceptedResponse is returned when a feed sync has been scheduled.
type SyncAcceptedResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// SyncStatusResponse reports the most recent feed sync.
type SyncStatusResponse struct {
	TaskID   string `json:"task_id,omitempty"`
	State    string `json:"state"`
	Imported int    `json:"imported"`
	Error    string `json:"error,omitempty"`
}

// ToSyncStatusResponse converts a ports.SyncStatus to an HTTP response DTO.
func ToSyncStatusResponse(s ports.SyncStatus) SyncStatusResponse {
	return SyncStatusResponse{
		TaskID:   s.TaskID,
		State:    string(s.State),
		Imported: s.Imported,
		Error:    s.Error,
	}
}
