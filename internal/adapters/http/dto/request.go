package dto

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"

	// MaxBatchSize bounds the number of entries in a batch request.
	MaxBatchSize = 100
)

// ArticleRequest represents the JSON body for upserting a single article.
// An omitted ID asks the server to assign one.
type ArticleRequest struct {
	ID     string   `json:"id,omitempty"`
	Title  string   `json:"title"`
	Body   string   `json:"body,omitempty"`
	Author string   `json:"author,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *ArticleRequest) Validate() error {
	fields := r.validate("")
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (r *ArticleRequest) validate(prefix string) map[string]string {
	fields := make(map[string]string)

	if r.ID != "" && strings.TrimSpace(r.ID) == "" {
		fields[prefix+"id"] = msgMustNotEmpty
	}
	if strings.TrimSpace(r.Title) == "" {
		fields[prefix+"title"] = msgRequired
	}
	for _, tag := range r.Tags {
		if strings.TrimSpace(tag) == "" {
			fields[prefix+"tags"] = "must not contain empty entries"
			break
		}
	}

	return fields
}

// ToDomain converts the request to an article entity.
func (r *ArticleRequest) ToDomain() article.Article {
	return article.Article{
		ID:     strings.TrimSpace(r.ID),
		Title:  r.Title,
		Body:   r.Body,
		Author: r.Author,
		Tags:   r.Tags,
	}
}

// BatchArticlesRequest represents the JSON body for an atomic batch upsert.
type BatchArticlesRequest struct {
	Articles []ArticleRequest `json:"articles"`
}

// Validate checks every entry, keying failures by their index (e.g. "[2].title").
// Returns a *domain.ValidationError if any checks fail.
func (r *BatchArticlesRequest) Validate() error {
	fields := make(map[string]string)

	switch {
	case len(r.Articles) == 0:
		fields["articles"] = msgMustNotEmpty
	case len(r.Articles) > MaxBatchSize:
		fields["articles"] = fmt.Sprintf("must have at most %d entries, got %d", MaxBatchSize, len(r.Articles))
	}

	for i := range r.Articles {
		for k, v := range r.Articles[i].validate(fmt.Sprintf("[%d].", i)) {
			fields[k] = v
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToDomain converts every entry to an article entity, preserving order.
func (r *BatchArticlesRequest) ToDomain() []article.Article {
	out := make([]article.Article, len(r.Articles))
	for i := range r.Articles {
		out[i] = r.Articles[i].ToDomain()
	}
	return out
}

// DeleteArticlesRequest represents the JSON body for an atomic batch delete.
type DeleteArticlesRequest struct {
	IDs []string `json:"ids"`
}

// Validate checks that at least one non-blank ID is given.
// Returns a *domain.ValidationError if any checks fail.
func (r *DeleteArticlesRequest) Validate() error {
	fields := make(map[string]string)

	switch {
	case len(r.IDs) == 0:
		fields["ids"] = msgMustNotEmpty
	case len(r.IDs) > MaxBatchSize:
		fields["ids"] = fmt.Sprintf("must have at most %d entries, got %d", MaxBatchSize, len(r.IDs))
	}
	for i, id := range r.IDs {
		if strings.TrimSpace(id) == "" {
			fields[fmt.Sprintf("ids[%d]", i)] = msgMustNotEmpty
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
