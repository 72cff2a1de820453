package content

import (
	"context"
	"strings"
	"time"

	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/newsroom/backend/internal/domain/taxonomy"
	"github.com/google/uuid"
)

// MagazineStatus represents the workflow state of a magazine issue
type MagazineStatus string

const (
	MagazineStatusDraft     MagazineStatus = "DRAFT"
	MagazineStatusPublished MagazineStatus = "PUBLISHED"
)

// Magazine is a curated issue assembled by an editor
type Magazine struct {
	shared.BaseAggregateRoot
	Title         string
	Slug          string
	Description   string
	CoverImageURL string
	IssueNumber   int
	Status        MagazineStatus
	PublishedAt   *time.Time
	EditorID      uuid.UUID
}

// TableName returns the table name for GORM
func (Magazine) TableName() string {
	return "magazines"
}

// NewMagazine creates a new draft magazine issue
func NewMagazine(editorID uuid.UUID, title, slug string, issueNumber int) (*Magazine, error) {
	if editorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EDITOR", "Editor ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if issueNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_ISSUE", "Issue number must be positive")
	}
	if slug == "" {
		slug = taxonomy.Slugify(title)
	}
	if slug == "" || slug != taxonomy.Slugify(slug) {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase alphanumeric with hyphens")
	}

	return &Magazine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              slug,
		IssueNumber:       issueNumber,
		Status:            MagazineStatusDraft,
		EditorID:          editorID,
	}, nil
}

// Publish moves the magazine to PUBLISHED. Idempotent once published.
func (m *Magazine) Publish() error {
	if m.Status == MagazineStatusPublished {
		return nil
	}

	m.Status = MagazineStatusPublished
	if m.PublishedAt == nil {
		now := time.Now()
		m.PublishedAt = &now
	}
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// MagazineRepository defines the interface for magazine persistence
type MagazineRepository interface {
	Create(ctx context.Context, magazine *Magazine) error
	Update(ctx context.Context, magazine *Magazine) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Magazine, error)
	FindBySlug(ctx context.Context, slug string) (*Magazine, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Magazine, int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
