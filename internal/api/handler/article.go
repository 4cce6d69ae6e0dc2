package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/service"
)

// ArticleHandler handles article and revision endpoints
type ArticleHandler struct {
	articleService *service.ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// Create handles article creation
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	var input domain.ArticleCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	article, err := h.articleService.CreateArticle(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, article)
}

// List handles listing workspace articles
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	articles, err := h.articleService.ListArticles(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, articles)
}

// Get handles getting an article by ID
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		response.BadRequest(w, "invalid article ID")
		return
	}

	article, err := h.articleService.GetArticle(r.Context(), userID, workspaceID, articleID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, article)
}

// CreateRevision handles adding a new revision to an article
func (h *ArticleHandler) CreateRevision(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		response.BadRequest(w, "invalid article ID")
		return
	}

	var input domain.RevisionCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	revision, err := h.articleService.CreateRevision(r.Context(), userID, workspaceID, articleID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, revision)
}

// ListRevisions handles listing an article's revisions
func (h *ArticleHandler) ListRevisions(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		response.BadRequest(w, "invalid article ID")
		return
	}

	revisions, err := h.articleService.ListRevisions(r.Context(), userID, workspaceID, articleID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, revisions)
}

// GetRevision handles getting a single revision
func (h *ArticleHandler) GetRevision(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	revisionID, err := uuid.Parse(chi.URLParam(r, "revisionID"))
	if err != nil {
		response.BadRequest(w, "invalid revision ID")
		return
	}

	revision, err := h.articleService.GetRevision(r.Context(), userID, workspaceID, revisionID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, revision)
}
