package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ArticleRepository handles article and revision data access
type ArticleRepository struct {
	db *DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// CreateArticle creates a new article
func (r *ArticleRepository) CreateArticle(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (id, workspace_id, title, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		article.ID,
		article.WorkspaceID,
		article.Title,
		article.CreatedBy,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// GetArticle retrieves an article scoped to a workspace
func (r *ArticleRepository) GetArticle(ctx context.Context, workspaceID, articleID uuid.UUID) (*domain.Article, error) {
	query := `
		SELECT id, workspace_id, title, created_by, created_at, updated_at
		FROM articles
		WHERE id = $1 AND workspace_id = $2
	`

	var article domain.Article
	err := r.db.Pool.QueryRow(ctx, query, articleID, workspaceID).Scan(
		&article.ID,
		&article.WorkspaceID,
		&article.Title,
		&article.CreatedBy,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &article, nil
}

// ListArticles retrieves all articles in a workspace, newest first
func (r *ArticleRepository) ListArticles(ctx context.Context, workspaceID uuid.UUID) ([]domain.Article, error) {
	query := `
		SELECT id, workspace_id, title, created_by, created_at, updated_at
		FROM articles
		WHERE workspace_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var article domain.Article
		if err := rows.Scan(
			&article.ID,
			&article.WorkspaceID,
			&article.Title,
			&article.CreatedBy,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// CreateRevision creates a new revision
func (r *ArticleRepository) CreateRevision(ctx context.Context, revision *domain.Revision) error {
	query := `
		INSERT INTO revisions (id, workspace_id, article_id, author_id, body, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		revision.ID,
		revision.WorkspaceID,
		revision.ArticleID,
		revision.AuthorID,
		revision.Body,
		revision.Status,
		revision.CreatedAt,
		revision.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create revision: %w", err)
	}

	return nil
}

const revisionSelect = `
	SELECT id, workspace_id, article_id, author_id, body, status, created_at, updated_at
	FROM revisions
	WHERE id = $1 AND workspace_id = $2
`

func scanRevision(row pgx.Row) (*domain.Revision, error) {
	var revision domain.Revision
	err := row.Scan(
		&revision.ID,
		&revision.WorkspaceID,
		&revision.ArticleID,
		&revision.AuthorID,
		&revision.Body,
		&revision.Status,
		&revision.CreatedAt,
		&revision.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get revision: %w", err)
	}

	return &revision, nil
}

// GetRevision retrieves a revision scoped to a workspace
func (r *ArticleRepository) GetRevision(ctx context.Context, workspaceID, revisionID uuid.UUID) (*domain.Revision, error) {
	return scanRevision(r.db.Pool.QueryRow(ctx, revisionSelect, revisionID, workspaceID))
}

// GetRevisionTx retrieves a revision inside an existing transaction
func (r *ArticleRepository) GetRevisionTx(ctx context.Context, tx pgx.Tx, workspaceID, revisionID uuid.UUID) (*domain.Revision, error) {
	return scanRevision(tx.QueryRow(ctx, revisionSelect, revisionID, workspaceID))
}

// ListRevisions retrieves the revisions of one article, newest first
func (r *ArticleRepository) ListRevisions(ctx context.Context, workspaceID, articleID uuid.UUID) ([]domain.Revision, error) {
	query := `
		SELECT id, workspace_id, article_id, author_id, body, status, created_at, updated_at
		FROM revisions
		WHERE workspace_id = $1 AND article_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []domain.Revision
	for rows.Next() {
		var revision domain.Revision
		if err := rows.Scan(
			&revision.ID,
			&revision.WorkspaceID,
			&revision.ArticleID,
			&revision.AuthorID,
			&revision.Body,
			&revision.Status,
			&revision.CreatedAt,
			&revision.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		revisions = append(revisions, revision)
	}

	return revisions, nil
}

// UpdateRevisionStatusTx sets a revision's status inside an existing
// transaction
func (r *ArticleRepository) UpdateRevisionStatusTx(ctx context.Context, tx pgx.Tx, workspaceID, revisionID uuid.UUID, status domain.RevisionStatus) error {
	query := `
		UPDATE revisions
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
	`

	tag, err := tx.Exec(ctx, query, revisionID, workspaceID, status)
	if err != nil {
		return fmt.Errorf("failed to update revision status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}
