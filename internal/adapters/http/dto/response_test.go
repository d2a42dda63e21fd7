package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func validArticle() article.Article {
	return article.Article{
		ID:        "a1",
		Title:     "Channels in practice",
		Body:      "Unbuffered channels synchronize.",
		Author:    "rob",
		Tags:      []string{"go", "concurrency"},
		Revision:  3,
		CreatedAt: testTime,
		UpdatedAt: testTime.Add(time.Hour),
	}
}

func TestToArticleResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		article article.Article
		verify  func(t *testing.T, got dto.ArticleResponse)
	}{
		{
			name:    "maps all fields correctly",
			article: validArticle(),
			verify: func(t *testing.T, got dto.ArticleResponse) {
				t.Helper()
				if got.ID != "a1" {
					t.Errorf("ID = %q, want %q", got.ID, "a1")
				}
				if got.Title != "Channels in practice" {
					t.Errorf("Title = %q, want %q", got.Title, "Channels in practice")
				}
				if got.Revision != 3 {
					t.Errorf("Revision = %d, want 3", got.Revision)
				}
				if len(got.Tags) != 2 {
					t.Errorf("len(Tags) = %d, want 2", len(got.Tags))
				}
			},
		},
		{
			name:    "timestamps are RFC 3339",
			article: validArticle(),
			verify: func(t *testing.T, got dto.ArticleResponse) {
				t.Helper()
				if got.CreatedAt != "2026-02-12T15:04:05Z" {
					t.Errorf("CreatedAt = %q, want %q", got.CreatedAt, "2026-02-12T15:04:05Z")
				}
				if got.UpdatedAt != "2026-02-12T16:04:05Z" {
					t.Errorf("UpdatedAt = %q, want %q", got.UpdatedAt, "2026-02-12T16:04:05Z")
				}
			},
		},
		{
			name: "nil tags become empty slice",
			article: func() article.Article {
				a := validArticle()
				a.Tags = nil
				return a
			}(),
			verify: func(t *testing.T, got dto.ArticleResponse) {
				t.Helper()
				if got.Tags == nil {
					t.Error("Tags = nil, want empty slice")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.verify(t, dto.ToArticleResponse(&tt.article))
		})
	}
}

func TestToArticleListResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		articles  []article.Article
		wantCount int
	}{
		{name: "empty list", articles: []article.Article{}, wantCount: 0},
		{name: "nil list", articles: nil, wantCount: 0},
		{name: "two articles", articles: []article.Article{validArticle(), validArticle()}, wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := dto.ToArticleListResponse(tt.articles)
			if got.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", got.Count, tt.wantCount)
			}
			if got.Articles == nil {
				t.Error("Articles = nil, want non-nil slice")
			}
		})
	}
}

func TestArticleResponse_JSONSerialization(t *testing.T) {
	t.Parallel()

	a := validArticle()
	a.Author = ""
	data, err := json.Marshal(dto.ToArticleResponse(&a))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	for _, key := range []string{"id", "title", "body", "tags", "revision", "created_at", "updated_at"} {
		if _, ok := m[key]; !ok {
			t.Errorf("JSON missing key %q, got keys: %v", key, keys(m))
		}
	}
	if _, ok := m["author"]; ok {
		t.Error("JSON has key \"author\", want it omitted when empty")
	}
}

func TestToSyncStatusResponse(t *testing.T) {
	t.Parallel()

	got := dto.ToSyncStatusResponse(ports.SyncStatus{
		TaskID:   "01J0000000000000000000000",
		State:    ports.SyncFailed,
		Imported: 0,
		Error:    "feed down",
	})

	if got.State != "failed" {
		t.Errorf("State = %q, want %q", got.State, "failed")
	}
	if got.Error != "feed down" {
		t.Errorf("Error = %q, want %q", got.Error, "feed down")
	}
	if got.TaskID != "01J0000000000000000000000" {
		t.Errorf("TaskID = %q", got.TaskID)
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
