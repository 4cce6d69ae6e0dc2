package domain

import (
	"time"

	"github.com/google/uuid"
)

// RevisionStatus is the review lifecycle state of a revision.
type RevisionStatus string

const (
	RevisionDraft     RevisionStatus = "draft"
	RevisionSubmitted RevisionStatus = "submitted"
	RevisionApproved  RevisionStatus = "approved"
	RevisionRejected  RevisionStatus = "rejected"
)

// Article is a content entity within a workspace. Its body lives in
// revisions; the article row itself only carries identity and title.
type Article struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Title       string    `json:"title"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Revision is one saved version of an article's body.
type Revision struct {
	ID          uuid.UUID      `json:"id"`
	WorkspaceID uuid.UUID      `json:"workspace_id"`
	ArticleID   uuid.UUID      `json:"article_id"`
	AuthorID    uuid.UUID      `json:"author_id"`
	Body        string         `json:"body"`
	Status      RevisionStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ArticleCreate represents article creation data.
type ArticleCreate struct {
	Title string `json:"title" validate:"required,max=500"`
	Body  string `json:"body"`
}

// RevisionCreate represents a new draft revision of an article.
type RevisionCreate struct {
	Body string `json:"body" validate:"required"`
}
