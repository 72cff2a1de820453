package publishing

import (
	"time"

	"github.com/newsroom/backend/internal/domain/content"
	"github.com/google/uuid"
)

// CreateArticleRequest represents a request to create a new article
type CreateArticleRequest struct {
	Title           string     `json:"title" binding:"required,min=1,max=300"`
	Slug            string     `json:"slug" binding:"omitempty,max=300"`
	Content         string     `json:"content" binding:"required"`
	Excerpt         string     `json:"excerpt" binding:"max=1000"`
	CoverImageURL   string     `json:"cover_image_url" binding:"omitempty,max=500"`
	CategoryID      *uuid.UUID `json:"category_id"`
	CategoryName    string     `json:"category_name" binding:"omitempty,max=100"`
	Tags            []string   `json:"tags" binding:"omitempty,max=20,dive,min=1,max=100"`
	Visibility      string     `json:"visibility" binding:"omitempty,oneof=PUBLIC PRIVATE"`
	ScheduledAt     string     `json:"scheduled_at" binding:"omitempty"` // RFC3339
	MetaTitle       string     `json:"meta_title" binding:"omitempty,max=300"`
	MetaDescription string     `json:"meta_description" binding:"omitempty,max=500"`
	MetaKeywords    string     `json:"meta_keywords" binding:"omitempty,max=500"`
}

// UpdateArticleRequest represents a partial update to an article.
// Nil fields are left untouched; a non-nil Tags slice replaces the
// full tag set.
type UpdateArticleRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=1,max=300"`
	Content         *string    `json:"content"`
	Excerpt         *string    `json:"excerpt" binding:"omitempty,max=1000"`
	CoverImageURL   *string    `json:"cover_image_url" binding:"omitempty,max=500"`
	CategoryID      *uuid.UUID `json:"category_id"`
	Visibility      *string    `json:"visibility" binding:"omitempty,oneof=PUBLIC PRIVATE"`
	IsFeatured      *bool      `json:"is_featured"`
	ScheduledAt     *string    `json:"scheduled_at" binding:"omitempty"` // RFC3339, moves a draft to SCHEDULED
	Tags            *[]string  `json:"tags" binding:"omitempty,max=20"`
	MetaTitle       *string    `json:"meta_title" binding:"omitempty,max=300"`
	MetaDescription *string    `json:"meta_description" binding:"omitempty,max=500"`
	MetaKeywords    *string    `json:"meta_keywords" binding:"omitempty,max=500"`
}

// ArticleListFilter represents filter options for article listings
type ArticleListFilter struct {
	Status     string     `form:"status" binding:"omitempty,oneof=DRAFT SCHEDULED PUBLISHED REJECTED"`
	AuthorID   *uuid.UUID `form:"author_id"`
	CategoryID *uuid.UUID `form:"category_id"`
	Keyword    string     `form:"keyword"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ArticleResponse represents an article in API responses
type ArticleResponse struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	Content         string      `json:"content,omitempty"`
	Excerpt         string      `json:"excerpt,omitempty"`
	CoverImageURL   string      `json:"cover_image_url,omitempty"`
	Status          string      `json:"status"`
	Visibility      string      `json:"visibility"`
	AuthorID        uuid.UUID   `json:"author_id"`
	CategoryID      *uuid.UUID  `json:"category_id,omitempty"`
	TagIDs          []uuid.UUID `json:"tag_ids,omitempty"`
	PublishedAt     *time.Time  `json:"published_at,omitempty"`
	ScheduledAt     *time.Time  `json:"scheduled_at,omitempty"`
	Views           int64       `json:"views"`
	Likes           int64       `json:"likes"`
	IsFeatured      bool        `json:"is_featured"`
	MetaTitle       string      `json:"meta_title,omitempty"`
	MetaDescription string      `json:"meta_description,omitempty"`
	MetaKeywords    string      `json:"meta_keywords,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ArticleListResponse represents a list item for articles
type ArticleListResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Status        string     `json:"status"`
	AuthorID      uuid.UUID  `json:"author_id"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	Views         int64      `json:"views"`
	IsFeatured    bool       `json:"is_featured"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateMagazineRequest represents a request to create a magazine issue
type CreateMagazineRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=300"`
	Slug          string `json:"slug" binding:"omitempty,max=300"`
	Description   string `json:"description" binding:"omitempty,max=2000"`
	CoverImageURL string `json:"cover_image_url" binding:"omitempty,max=500"`
	IssueNumber   int    `json:"issue_number" binding:"required,min=1"`
}

// MagazineResponse represents a magazine in API responses
type MagazineResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	IssueNumber   int        `json:"issue_number"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	EditorID      uuid.UUID  `json:"editor_id"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateCommentRequest represents a request to comment on an article
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// ModerateCommentRequest represents a moderation decision
type ModerateCommentRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty"`
	Content   string     `json:"content"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// RequestUploadRequest asks for a presigned upload URL
type RequestUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	Type        string `json:"type" binding:"required,oneof=IMAGE VIDEO DOCUMENT"`
}

// RequestUploadResponse carries the presigned URL and the key to register
type RequestUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	PublicURL  string    `json:"public_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// RegisterMediaRequest records metadata for a completed upload
type RegisterMediaRequest struct {
	StorageKey string `json:"storage_key" binding:"required,max=500"`
	Type       string `json:"type" binding:"required,oneof=IMAGE VIDEO DOCUMENT"`
	AltText    string `json:"alt_text" binding:"omitempty,max=500"`
	Caption    string `json:"caption" binding:"omitempty,max=1000"`
}

// MediaResponse represents a media asset in API responses
type MediaResponse struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	Type         string    `json:"type"`
	UploadedByID uuid.UUID `json:"uploaded_by_id"`
	AltText      string    `json:"alt_text,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToArticleResponse converts a domain Post to ArticleResponse
func ToArticleResponse(p *content.Post) ArticleResponse {
	return ArticleResponse{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		CoverImageURL:   p.CoverImageURL,
		Status:          string(p.Status),
		Visibility:      string(p.Visibility),
		AuthorID:        p.AuthorID,
		CategoryID:      p.CategoryID,
		TagIDs:          p.TagIDs,
		PublishedAt:     p.PublishedAt,
		ScheduledAt:     p.ScheduledAt,
		Views:           p.Views,
		Likes:           p.Likes,
		IsFeatured:      p.IsFeatured,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		MetaKeywords:    p.MetaKeywords,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToArticleListResponse converts a domain Post to ArticleListResponse
func ToArticleListResponse(p *content.Post) ArticleListResponse {
	return ArticleListResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		CoverImageURL: p.CoverImageURL,
		Status:        string(p.Status),
		AuthorID:      p.AuthorID,
		CategoryID:    p.CategoryID,
		PublishedAt:   p.PublishedAt,
		Views:         p.Views,
		IsFeatured:    p.IsFeatured,
		CreatedAt:     p.CreatedAt,
	}
}

// ToMagazineResponse converts a domain Magazine to MagazineResponse
func ToMagazineResponse(m *content.Magazine) MagazineResponse {
	return MagazineResponse{
		ID:            m.ID,
		Title:         m.Title,
		Slug:          m.Slug,
		Description:   m.Description,
		CoverImageURL: m.CoverImageURL,
		IssueNumber:   m.IssueNumber,
		Status:        string(m.Status),
		PublishedAt:   m.PublishedAt,
		EditorID:      m.EditorID,
		CreatedAt:     m.CreatedAt,
	}
}

// ToCommentResponse converts a domain Comment to CommentResponse
func ToCommentResponse(c *content.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

// ToMediaResponse converts a domain Media to MediaResponse
func ToMediaResponse(m *content.Media) MediaResponse {
	return MediaResponse{
		ID:           m.ID,
		URL:          m.URL,
		Type:         string(m.Type),
		UploadedByID: m.UploadedByID,
		AltText:      m.AltText,
		Caption:      m.Caption,
		CreatedAt:    m.CreatedAt,
	}
}
