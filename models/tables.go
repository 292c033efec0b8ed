package models

import "time"

// Content type discriminator for Article.
const (
	TypeBlog      = "blog"
	TypeCaseStudy = "case_study"
)

// User roles. Editors can author content, admins can additionally
// delete it and read analytics.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
	Role         string    `gorm:"not null;default:'editor'" json:"role"`
	ProfileID    string    `gorm:"index" json:"profile_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is an author's public display identity. Read-only outside
// of user provisioning.
type Profile struct {
	ID       string `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"not null" json:"full_name"`
}

// Article covers both blog posts and case studies, discriminated by Type.
// The case-study-only columns stay empty for blog rows.
type Article struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	Slug          string     `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt       string     `gorm:"type:text" json:"excerpt,omitempty"`
	Content       string     `gorm:"type:text" json:"content"` // markdown
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Tags          []string   `gorm:"serializer:json" json:"tags,omitempty"`
	Published     bool       `gorm:"index" json:"published"`
	PublishedAt   *time.Time `gorm:"index" json:"published_at,omitempty"`
	Type          string     `gorm:"not null;default:'blog';index" json:"type"`
	Client        string     `json:"client,omitempty"`
	Industry      string     `json:"industry,omitempty"`
	Metrics       string     `gorm:"type:text" json:"metrics,omitempty"` // raw JSON object text
	AuthorID      string     `gorm:"index" json:"author_id,omitempty"`
	AuthorName    string     `gorm:"-" json:"author_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// KBArticle is the knowledge-base variant: category-scoped, no
// case-study fields. Kept as its own table to match the store schema.
type KBArticle struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	Slug          string     `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt       string     `gorm:"type:text" json:"excerpt,omitempty"`
	Content       string     `gorm:"type:text" json:"content"`
	Category      string     `gorm:"not null;index" json:"category"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Published     bool       `gorm:"index" json:"published"`
	PublishedAt   *time.Time `gorm:"index" json:"published_at,omitempty"`
	AuthorID      string     `gorm:"index" json:"author_id,omitempty"`
	AuthorName    string     `gorm:"-" json:"author_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ContactSubmission struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// CVDownload records a resume-download lead.
type CVDownload struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
