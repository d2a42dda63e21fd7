package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/mocks"
)

func newArticleHandler(t *testing.T) (*handlers.ArticleHandler, *mocks.MockArticleService) {
	t.Helper()
	svc := mocks.NewMockArticleService(t)
	return handlers.NewArticleHandler(svc), svc
}

// --- ListArticles ---

func TestListArticles_Success(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	svc.EXPECT().ListArticles(mock.Anything).Return([]article.Article{validArticle()}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	h.ListArticles(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ArticleListResponse](t, rec)
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1", resp.Count)
	}
}

func TestListArticles_ByIDs(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	svc.EXPECT().GetArticles(mock.Anything, []string{"a1", "b2"}).Return([]article.Article{validArticle()}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles?ids=a1,+b2,", nil)
	h.ListArticles(rec, req)

	requireStatus(t, rec, http.StatusOK)
}

func TestListArticles_EmptyIDs(t *testing.T) {
	t.Parallel()
	h, _ := newArticleHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles?ids=,,", nil)
	h.ListArticles(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestListArticles_ServiceError(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	svc.EXPECT().ListArticles(mock.Anything).Return(nil, domain.ErrPersistence)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	h.ListArticles(rec, req)

	requireStatus(t, rec, http.StatusInternalServerError)
}

// --- GetArticle ---

func TestGetArticle_Success(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	a := validArticle()
	svc.EXPECT().GetArticle(mock.Anything, "a1").Return(&a, nil)

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/articles/a1", nil), map[string]string{"id": "a1"})
	h.GetArticle(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ArticleResponse](t, rec)
	if resp.ID != "a1" {
		t.Errorf("ID = %q, want %q", resp.ID, "a1")
	}
}

func TestGetArticle_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	svc.EXPECT().GetArticle(mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/articles/nope", nil), map[string]string{"id": "nope"})
	h.GetArticle(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

func TestGetArticle_BlankID(t *testing.T) {
	t.Parallel()
	h, _ := newArticleHandler(t)

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/articles/", nil), map[string]string{"id": " "})
	h.GetArticle(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- SaveArticle ---

func TestSaveArticle_Success(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	saved := validArticle()
	svc.EXPECT().SaveArticle(mock.Anything, mock.MatchedBy(func(a *article.Article) bool {
		return a.ID == "" && a.Title == "Select statements"
	})).Return(&saved, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/articles",
		jsonBody(t, dto.ArticleRequest{Title: "Select statements"}))
	h.SaveArticle(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ArticleResponse](t, rec)
	if resp.ID != "a1" {
		t.Errorf("ID = %q, want %q", resp.ID, "a1")
	}
}

func TestSaveArticle_InvalidJSON(t *testing.T) {
	t.Parallel()
	h, _ := newArticleHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/articles", bytes.NewBufferString("{not json"))
	h.SaveArticle(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestSaveArticle_UnknownFieldRejected(t *testing.T) {
	t.Parallel()
	h, _ := newArticleHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/articles",
		bytes.NewBufferString(`{"title":"Select statements","revison":2}`))
	h.SaveArticle(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body" {
		t.Fatalf("Errors = %+v, want one error at body", resp.Errors)
	}
	if resp.Errors[0].Message != `unknown field "revison"` {
		t.Errorf("Message = %q", resp.Errors[0].Message)
	}
}

func TestSaveArticle_ValidationFailure(t *testing.T) {
	t.Parallel()
	h, _ := newArticleHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/articles", jsonBody(t, dto.ArticleRequest{ID: "a1"}))
	h.SaveArticle(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.title" {
		t.Errorf("Errors = %+v, want one error at body.title", resp.Errors)
	}
}

// --- SaveArticles ---

func TestSaveArticles_Success(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	svc.EXPECT().SaveArticles(mock.Anything, mock.MatchedBy(func(as []article.Article) bool {
		return len(as) == 2 && as[0].ID == "x" && as[1].ID == "y"
	})).Return([]article.Article{validArticle(), validArticle()}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles", jsonBody(t, dto.BatchArticlesRequest{
		Articles: []dto.ArticleRequest{{ID: "x", Title: "one"}, {ID: "y", Title: "two"}},
	}))
	h.SaveArticles(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ArticleListResponse](t, rec)
	if resp.Count != 2 {
		t.Errorf("Count = %d, want 2", resp.Count)
	}
}

func TestSaveArticles_ConflictFromService(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	svc.EXPECT().SaveArticles(mock.Anything, mock.Anything).
		Return(nil, domain.NewError(domain.CategoryConflict, "revision changed", nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles", jsonBody(t, dto.BatchArticlesRequest{
		Articles: []dto.ArticleRequest{{Title: "one"}},
	}))
	h.SaveArticles(rec, req)

	requireStatus(t, rec, http.StatusConflict)
}

// --- DeleteArticle(s) ---

func TestDeleteArticle_Success(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	svc.EXPECT().DeleteArticle(mock.Anything, "a1").Return(nil)

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodDelete, "/api/v1/articles/a1", nil), map[string]string{"id": "a1"})
	h.DeleteArticle(rec, req)

	requireStatus(t, rec, http.StatusNoContent)
}

func TestDeleteArticle_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	svc.EXPECT().DeleteArticle(mock.Anything, "a1").Return(domain.ErrNotFound)

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodDelete, "/api/v1/articles/a1", nil), map[string]string{"id": "a1"})
	h.DeleteArticle(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

func TestDeleteArticles_Success(t *testing.T) {
	t.Parallel()
	h, svc := newArticleHandler(t)

	svc.EXPECT().DeleteArticles(mock.Anything, []string{"a1", "b2"}).Return(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/articles",
		jsonBody(t, dto.DeleteArticlesRequest{IDs: []string{"a1", "b2"}}))
	h.DeleteArticles(rec, req)

	requireStatus(t, rec, http.StatusNoContent)
}

func TestDeleteArticles_EmptyBody(t *testing.T) {
	t.Parallel()
	h, _ := newArticleHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/articles", jsonBody(t, dto.DeleteArticlesRequest{}))
	h.DeleteArticles(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}
