package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/rs/zerolog/log"
)

// ArticleStore is the article and revision persistence the service needs.
type ArticleStore interface {
	CreateArticle(ctx context.Context, article *domain.Article) error
	GetArticle(ctx context.Context, workspaceID, articleID uuid.UUID) (*domain.Article, error)
	ListArticles(ctx context.Context, workspaceID uuid.UUID) ([]domain.Article, error)
	CreateRevision(ctx context.Context, revision *domain.Revision) error
	GetRevision(ctx context.Context, workspaceID, revisionID uuid.UUID) (*domain.Revision, error)
	ListRevisions(ctx context.Context, workspaceID, articleID uuid.UUID) ([]domain.Revision, error)
}

// ArticleService handles the content entities the review workflow operates
// on. Thin glue; the review state machine lives in ReviewService.
type ArticleService struct {
	store         ArticleStore
	authz         *Authorizer
	notifications *NotificationService
}

// NewArticleService creates a new article service
func NewArticleService(store ArticleStore, authz *Authorizer, notifications *NotificationService) *ArticleService {
	return &ArticleService{store: store, authz: authz, notifications: notifications}
}

// CreateArticle creates an article with an initial draft revision and
// subscribes the creator to it. Requires at least editor.
func (s *ArticleService) CreateArticle(ctx context.Context, actorUserID, workspaceID uuid.UUID, input domain.ArticleCreate) (*domain.Article, error) {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleEditor); err != nil {
		return nil, err
	}

	now := time.Now()
	article := &domain.Article{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Title:       input.Title,
		CreatedBy:   actorUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	revision := &domain.Revision{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ArticleID:   article.ID,
		AuthorID:    actorUserID,
		Body:        input.Body,
		Status:      domain.RevisionDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateRevision(ctx, revision); err != nil {
		return nil, fmt.Errorf("failed to create initial revision: %w", err)
	}

	if _, err := s.notifications.Watch(ctx, actorUserID, workspaceID, domain.WatchCreate{
		TargetType:  domain.TargetArticle,
		TargetID:    article.ID.String(),
		NotifyInApp: true,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to create implicit watch on article")
	}

	return article, nil
}

// GetArticle retrieves an article, members only
func (s *ArticleService) GetArticle(ctx context.Context, actorUserID, workspaceID, articleID uuid.UUID) (*domain.Article, error) {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleViewer); err != nil {
		return nil, err
	}

	article, err := s.store.GetArticle(ctx, workspaceID, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %s: %w", articleID, domain.ErrNotFound)
	}

	return article, nil
}

// ListArticles retrieves all articles in a workspace, members only
func (s *ArticleService) ListArticles(ctx context.Context, actorUserID, workspaceID uuid.UUID) ([]domain.Article, error) {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.store.ListArticles(ctx, workspaceID)
}

// CreateRevision saves a new draft revision of an article. Requires at least
// editor. Mentions in the body fan out after the save.
func (s *ArticleService) CreateRevision(ctx context.Context, actorUserID, workspaceID, articleID uuid.UUID, input domain.RevisionCreate) (*domain.Revision, error) {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleEditor); err != nil {
		return nil, err
	}

	article, err := s.store.GetArticle(ctx, workspaceID, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %s: %w", articleID, domain.ErrNotFound)
	}

	now := time.Now()
	revision := &domain.Revision{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ArticleID:   articleID,
		AuthorID:    actorUserID,
		Body:        input.Body,
		Status:      domain.RevisionDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateRevision(ctx, revision); err != nil {
		return nil, fmt.Errorf("failed to create revision: %w", err)
	}

	payload := []byte(fmt.Sprintf(`{"article_id":%q,"revision_id":%q}`, articleID, revision.ID))
	if err := s.notifications.NotifyMentions(ctx, workspaceID, actorUserID, input.Body, payload); err != nil {
		log.Warn().Err(err).Msg("failed to fan out mentions")
	}

	return revision, nil
}

// GetRevision retrieves a revision, members only
func (s *ArticleService) GetRevision(ctx context.Context, actorUserID, workspaceID, revisionID uuid.UUID) (*domain.Revision, error) {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleViewer); err != nil {
		return nil, err
	}

	revision, err := s.store.GetRevision(ctx, workspaceID, revisionID)
	if err != nil {
		return nil, err
	}
	if revision == nil {
		return nil, fmt.Errorf("revision %s: %w", revisionID, domain.ErrNotFound)
	}

	return revision, nil
}

// ListRevisions retrieves an article's revisions, members only
func (s *ArticleService) ListRevisions(ctx context.Context, actorUserID, workspaceID, articleID uuid.UUID) ([]domain.Revision, error) {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.store.ListRevisions(ctx, workspaceID, articleID)
}
