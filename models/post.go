package models

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is the primary content entity. CategoryName and AuthorName are
// denormalized at write time; Tags hold tag names, not tag ids.
type Post struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	Excerpt         string     `json:"excerpt"`
	FeaturedImage   string     `json:"featured_image"`
	CategoryID      string     `json:"category_id"`
	CategoryName    string     `json:"category_name"`
	Tags            []string   `json:"tags"`
	Status          PostStatus `json:"status"`
	AuthorID        string     `json:"author_id"`
	AuthorName      string     `json:"author_name"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	Views           int        `json:"views"`
	PublishedAt     *time.Time `json:"published_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Title           string     `json:"title" binding:"required,min=1,max=200"`
	Content         string     `json:"content" binding:"required"`
	Excerpt         string     `json:"excerpt"`
	FeaturedImage   string     `json:"featured_image"`
	CategoryID      string     `json:"category_id"`
	Tags            []string   `json:"tags"`
	Status          PostStatus `json:"status" binding:"required,oneof=draft published"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
}

// UpdatePostRequest uses pointers so absent fields stay untouched while
// explicit empty values clear the field.
type UpdatePostRequest struct {
	Title           *string     `json:"title" binding:"omitempty,min=1,max=200"`
	Content         *string     `json:"content"`
	Excerpt         *string     `json:"excerpt"`
	FeaturedImage   *string     `json:"featured_image"`
	CategoryID      *string     `json:"category_id"`
	Tags            *[]string   `json:"tags"`
	Status          *PostStatus `json:"status" binding:"omitempty,oneof=draft published"`
	MetaTitle       *string     `json:"meta_title"`
	MetaDescription *string     `json:"meta_description"`
}

// PostFilters are conjunctive: every non-empty field must match.
type PostFilters struct {
	Status     PostStatus `form:"status" binding:"omitempty,oneof=draft published"`
	CategoryID string     `form:"category_id"`
	AuthorID   string     `form:"author_id"`
	Search     string     `form:"search"`
	Tag        string     `form:"tag"`
	SortBy     string     `form:"sort_by"`
	SortOrder  string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page       int        `form:"page"`
	Limit      int        `form:"limit"`
}

type PostPage struct {
	Posts      []Post `json:"posts"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}
