package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// ArticleHandler handles HTTP requests for article reads, upserts and deletes.
type ArticleHandler struct {
	service ports.ArticleService
}

// NewArticleHandler creates a new ArticleHandler with the given service port.
func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// ListArticles handles GET /api/v1/articles and GET /api/v1/articles?ids=a,b.
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	ids, filtered, err := parseIDs(r, "ids")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if filtered {
		articles, err := h.service.GetArticles(r.Context(), ids)
		if err != nil {
			dto.WriteErrorResponse(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.ToArticleListResponse(articles))
		return
	}

	articles, err := h.service.ListArticles(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToArticleListResponse(articles))
}

// GetArticle handles GET /api/v1/articles/{id}.
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	a, err := h.service.GetArticle(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToArticleResponse(a))
}

// SaveArticle handles PUT /api/v1/articles.
func (h *ArticleHandler) SaveArticle(w http.ResponseWriter, r *http.Request) {
	var req dto.ArticleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	a := req.ToDomain()
	saved, err := h.service.SaveArticle(r.Context(), &a)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToArticleResponse(saved))
}

// SaveArticles handles POST /api/v1/articles.
func (h *ArticleHandler) SaveArticles(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchArticlesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	saved, err := h.service.SaveArticles(r.Context(), req.ToDomain())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToArticleListResponse(saved))
}

// DeleteArticle handles DELETE /api/v1/articles/{id}.
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.service.DeleteArticle(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteArticles handles DELETE /api/v1/articles.
func (h *ArticleHandler) DeleteArticles(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteArticlesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.DeleteArticles(r.Context(), req.IDs); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
